package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"schoolpay_dashboard/internals/constants"
	"schoolpay_dashboard/internals/features/transactions/dto"
	txModel "schoolpay_dashboard/internals/features/transactions/model"
	helper "schoolpay_dashboard/internals/helpers"
	"schoolpay_dashboard/internals/services/api"
	"schoolpay_dashboard/internals/services/querysync"
)

type TransactionController struct {
	Client api.TransactionAPI
	List   *querysync.Query
	School *querysync.Query
}

func NewTransactionController(client api.TransactionAPI) *TransactionController {
	initial := txModel.Filters{Sort: constants.DefaultSort, Order: constants.DefaultOrder}
	return &TransactionController{
		Client: client,
		List:   querysync.NewTransactions(client, initial),
		School: querysync.NewSchoolTransactions(client, "", initial),
	}
}

// GET /api/transactions
func (tc *TransactionController) ListTransactions(c *fiber.Ctx) error {
	st := tc.List.Sync(c.UserContext(), dto.ParseListQuery(string(c.Request().URI().QueryString())))
	return renderList(c, st)
}

// GET /api/school-transactions?schoolId=...
func (tc *TransactionController) ListSchoolTransactions(c *fiber.Ctx) error {
	st := tc.School.Sync(c.UserContext(), dto.ParseSchoolQuery(string(c.Request().URI().QueryString())))
	return renderList(c, st)
}

// POST /api/transactions/refetch
func (tc *TransactionController) Refetch(c *fiber.Ctx) error {
	q := tc.List
	if strings.EqualFold(c.Query("view"), "school") {
		q = tc.School
	}
	return renderList(c, q.Refetch(c.UserContext()))
}

func renderList(c *fiber.Ctx, st querysync.State) error {
	msg := "ok"
	if st.Error != "" {
		msg = st.Error
	}
	return helper.JsonListEx(c, msg, st.Items, dto.ListPagination(st), dto.ListIncludes{
		Loading:  st.Loading,
		Error:    st.Error,
		Filters:  st.Filters,
		SchoolID: st.SchoolID,
	})
}

// GET /api/transactions/status/:orderId
func (tc *TransactionController) CheckStatus(c *fiber.Ctx) error {
	orderID := strings.TrimSpace(c.Params("orderId"))
	if orderID == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "order id is required")
	}
	tx, err := tc.Client.GetStatus(c.UserContext(), orderID)
	if err != nil {
		return helper.JsonError(c, api.HTTPStatus(err), api.Message(err, constants.ErrFetchStatus))
	}
	if tx == nil {
		return helper.JsonOK(c, "Transaction not found", nil)
	}
	return helper.JsonOK(c, "ok", tx)
}
