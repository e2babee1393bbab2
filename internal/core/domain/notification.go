package domain

type Color string

const (
	Red   Color = "red"
	Green Color = "green"
	Blue  Color = "blue"
)

type Notification struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Color   Color  `json:"color"`
}
