package view

import (
	"context"
	"html/template"
	"io"
	"sync"
)

var catalogTmpl = template.Must(template.New("catalog").Parse(`<div id="book-list">
{{- range .Entries}}
<div class="book-card">
  <img src="{{.ImageURL}}" alt="{{.ImageAlt}}">
  <h3>{{.Title}}</h3>
  <p>by {{.Author}}</p>
  <p>{{.PriceLabel}}</p>
  <button data-action="{{.Action.Kind}}" data-book-id="{{.Action.BookID}}">{{.Action.Label}}</button>
</div>
{{- end}}
</div>
`))

var cartTmpl = template.Must(template.New("cart").Parse(`<div id="cart-list">
{{- range .Rows}}
<div class="cart-item">
  <h4>{{.Title}}</h4>
  <p>{{.PriceLabel}}</p>
  <button data-action="{{.Action.Kind}}" data-book-id="{{.Action.BookID}}">{{.Action.Label}}</button>
</div>
{{- end}}
</div>
`))

// HTMLPresenter renders catalog and cart fragments with html/template so every
// value coming from the API is escaped.
type HTMLPresenter struct {
	mu  sync.Mutex
	out io.Writer
}

func NewHTMLPresenter(out io.Writer) *HTMLPresenter {
	return &HTMLPresenter{out: out}
}

func (p *HTMLPresenter) ShowCatalog(_ context.Context, c Catalog) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return catalogTmpl.Execute(p.out, c)
}

func (p *HTMLPresenter) ShowCart(_ context.Context, c Cart) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return cartTmpl.Execute(p.out, c)
}
