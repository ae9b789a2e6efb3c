package event

// ResourceChangeEvent 资源增删改之后发出的变更消息，
// 供后续的站点缓存刷新、推送等消费方使用
type ResourceChangeEvent struct {
	Kind   string `json:"kind"`
	ID     int64  `json:"id"`
	Action string `json:"action"`
}

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

func (ResourceChangeEvent) Topic() string {
	return "resource_change_events"
}
