package param

import (
	"net/http"
	"strings"

	"github.com/asaskevich/govalidator"
	"github.com/go-chi/chi"
	"github.com/gorilla/schema"
	"github.com/spf13/cast"
	"github.com/twitchtv/twirp"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.SetAliasTag("json")
	decoder.IgnoreUnknownKeys(true)
}

// Binding decode the query string into v and validate its `valid` tags
func Binding(r *http.Request, v interface{}) error {
	if err := decoder.Decode(v, r.URL.Query()); err != nil {
		return twirp.InvalidArgumentError("query", err.Error())
	}

	if _, err := govalidator.ValidateStruct(v); err != nil {
		return twirp.InvalidArgumentError("query", err.Error())
	}

	return nil
}

// ID positive integer url param
func ID(r *http.Request, key string) (uint64, error) {
	id, err := cast.ToUint64E(strings.TrimSpace(chi.URLParam(r, key)))
	if err != nil || id == 0 {
		return 0, twirp.InvalidArgumentError(key, "must be a positive integer")
	}

	return id, nil
}
