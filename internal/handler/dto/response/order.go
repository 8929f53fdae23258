package response

import (
	"ops-console/internal/domain/order"

	"github.com/google/uuid"
)

type OrderProblemsResponse struct {
	OrderID  uuid.UUID       `json:"orderId"`
	Problems []order.Problem `json:"problems"`
}

func FromProblems(orderID uuid.UUID, problems []order.Problem) *OrderProblemsResponse {
	if problems == nil {
		problems = []order.Problem{}
	}
	return &OrderProblemsResponse{
		OrderID:  orderID,
		Problems: problems,
	}
}
