package httpresp

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/therapy-scheduler/internal/notify"
)

type ListResponse[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

// WorkflowResponse leva o resultado e as notificações geradas no fluxo.
type WorkflowResponse struct {
	Data          any              `json:"data"`
	Notifications []notify.Message `json:"notifications"`
}

func OK(c *gin.Context, data any) {
	c.JSON(200, data)
}

func List[T any](c *gin.Context, data []T) {
	if data == nil {
		data = []T{}
	}
	c.JSON(200, ListResponse[T]{
		Data:  data,
		Total: len(data),
	})
}

func Workflow(c *gin.Context, status int, data any, notes *notify.Collector) {
	msgs := notes.Messages()
	if msgs == nil {
		msgs = []notify.Message{}
	}
	c.JSON(status, WorkflowResponse{
		Data:          data,
		Notifications: msgs,
	})
}
