package request

type TodoRequest struct {
	Name     string `json:"name,omitempty" validate:"required,min=1,max=255"`
	Deadline string `json:"deadline,omitempty"`
	Priority string `json:"priority,omitempty" validate:"required,oneof=small medium big"`
}
