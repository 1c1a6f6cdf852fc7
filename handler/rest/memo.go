package rest

import (
	"encoding/json"
	"net/http"

	"chrono/core"
	"chrono/handler/render"
	"chrono/handler/views"

	"github.com/asaskevich/govalidator"
	"github.com/shopspring/decimal"
	"github.com/twitchtv/twirp"
)

var actionTypes = []string{
	string(core.ActionTypeLend),
	string(core.ActionTypeWithdraw),
	string(core.ActionTypeOpen),
	string(core.ActionTypeBorrowMore),
	string(core.ActionTypeRepay),
}

// memoHandler encode the memo a payment must carry to request an action
func (h *handler) memoHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var memo core.ActionMemo
		if err := json.NewDecoder(r.Body).Decode(&memo); err != nil {
			render.Error(w, twirp.InvalidArgumentError("body", err.Error()))
			return
		}

		if !govalidator.IsIn(string(memo.Type), actionTypes...) {
			render.Error(w, twirp.InvalidArgumentError("type", "unknown action"))
			return
		}

		if memo.BorrowTokenType != "" {
			if _, ok := h.tokens.Find(memo.BorrowTokenType); !ok {
				render.Error(w, core.ErrUnsupportedToken)
				return
			}
		}

		if memo.BorrowAmount != "" {
			if _, err := decimal.NewFromString(memo.BorrowAmount); err != nil {
				render.Error(w, twirp.InvalidArgumentError("borrow_amount", err.Error()))
				return
			}
		}

		data, err := memo.Encode()
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.Memo{Memo: data})
	}
}
