package http

import "sync"

// ForcedNav — принудительная навигация как состояние процесса: аналог
// window.location для локального UI. Клиент бэкенда записывает цель
// (истёкшая сессия, запрет доступа), а мидлвар ForceNav воспроизводит её
// редиректом на ближайшем странице-запросе.
//
// Хранится только последняя цель: две подряд принудительные навигации
// схлопываются в последнюю, как и в браузере.
type ForcedNav struct {
	mu     sync.Mutex
	target string
	set    bool
}

// NewForcedNav создаёт навигатор без отложенной цели.
func NewForcedNav() *ForcedNav {
	return &ForcedNav{}
}

// Navigate записывает цель принудительной навигации.
func (n *ForcedNav) Navigate(route string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.target = route
	n.set = true
}

// Take забирает отложенную цель (одноразово).
func (n *ForcedNav) Take() (string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if !n.set {
		return "", false
	}

	target := n.target
	n.target = ""
	n.set = false

	return target, true
}

// Pending сообщает о наличии отложенной цели, не забирая её.
func (n *ForcedNav) Pending() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.set
}
