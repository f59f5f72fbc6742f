package view

import (
	"context"
	"fmt"
	"io"
	"sync"
	"text/tabwriter"
)

// TextPresenter renders views as aligned tables and prints notifications and
// navigation targets. It is safe for concurrent use.
type TextPresenter struct {
	mu  sync.Mutex
	out io.Writer
}

func NewTextPresenter(out io.Writer) *TextPresenter {
	return &TextPresenter{out: out}
}

func (p *TextPresenter) ShowCatalog(_ context.Context, c Catalog) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if c.Unavailable {
		return nil
	}
	if len(c.Entries) == 0 {
		_, err := fmt.Fprintln(p.out, "No books available.")
		return err
	}
	tw := tabwriter.NewWriter(p.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tAUTHOR\tPRICE")
	for _, e := range c.Entries {
		fmt.Fprintf(tw, "%s\t%s\tby %s\t%s\n", e.BookID, e.Title, e.Author, e.PriceLabel)
	}
	return tw.Flush()
}

func (p *TextPresenter) ShowCart(_ context.Context, c Cart) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if c.Unavailable {
		return nil
	}
	if len(c.Rows) == 0 {
		_, err := fmt.Fprintln(p.out, "Your cart is empty.")
		return err
	}
	tw := tabwriter.NewWriter(p.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tPRICE")
	for _, r := range c.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.BookID, r.Title, r.PriceLabel)
	}
	return tw.Flush()
}

func (p *TextPresenter) Notify(_ context.Context, message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.out, message)
}

func (p *TextPresenter) Navigate(_ context.Context, page string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, "-> %s\n", page)
}
