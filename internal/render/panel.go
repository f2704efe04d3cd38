package render

type State string

const (
	StateEmpty   State = "empty"
	StateLoading State = "loading"
	StateError   State = "error"
	StateContent State = "content"
)

// Panel is one titled result area of the page.
type Panel struct {
	Title   string  `json:"title"`
	State   State   `json:"state"`
	Error   string  `json:"error,omitempty"`
	Display Display `json:"display"`
}

// NewPanel resolves the panel state: loading wins over error, error over
// content.
func NewPanel(title string, loading bool, errMsg string, d Display) Panel {
	p := Panel{Title: title, Display: d}
	switch {
	case loading:
		p.State = StateLoading
	case errMsg != "":
		p.State = StateError
		p.Error = errMsg
	case d.Kind == 0, d.Kind == KindText && d.Empty():
		p.State = StateEmpty
	default:
		p.State = StateContent
	}
	return p
}
