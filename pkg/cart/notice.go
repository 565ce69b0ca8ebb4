package cart

// Kind distinguishes how a notice is presented.
type Kind string

const (
	Success Kind = "success"
	Info    Kind = "info"
)

// Notice texts share the language of the built-in catalog.
const (
	MsgAdded     = "Добавлено в корзину!"
	MsgRemoved   = "Товар удалён из корзины"
	MsgEmpty     = "Корзина пуста"
	MsgOrderSent = "Спасибо за заказ! Мы свяжемся с вами."
)

// Notice is a user-visible message emitted by a cart operation.
type Notice struct {
	Kind        Kind   `json:"kind"`
	Message     string `json:"message"`
	Description string `json:"description,omitempty"`
}

// Notifier receives notices as operations complete.
type Notifier interface {
	Notify(Notice)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notice)

// Notify calls f(n).
func (f NotifierFunc) Notify(n Notice) { f(n) }

// Recorder collects notices in emission order.
type Recorder struct {
	notices []Notice
}

// Notify appends n.
func (r *Recorder) Notify(n Notice) { r.notices = append(r.notices, n) }

// Notices returns the collected notices.
func (r *Recorder) Notices() []Notice {
	out := make([]Notice, len(r.notices))
	copy(out, r.notices)
	return out
}

type discard struct{}

func (discard) Notify(Notice) {}
