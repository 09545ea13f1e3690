package importer

import (
	"context"
	"strings"
	"testing"

	"eggypro-store/internal/domain"
)

type recordingWriter struct {
	upserts []domain.Product
	err     error
}

func (w *recordingWriter) Upsert(_ context.Context, p domain.Product) (*domain.Product, error) {
	if w.err != nil {
		return nil, w.err
	}
	w.upserts = append(w.upserts, p)
	return &p, nil
}

func TestRunImportsRows(t *testing.T) {
	input := strings.Join([]string{
		"slug,name,description,price,image_url",
		`eggy-whey,EggyPro Whey,Vanilla,29.99,/img/whey.jpg`,
		`eggy-gainer,EggyPro Gainer,Big,"$1,049.00",/img/gainer.jpg`,
	}, "\n")

	w := &recordingWriter{}
	imp := NewCSVImporter(strings.NewReader(input), w)

	n, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 || len(w.upserts) != 2 {
		t.Fatalf("expected 2 imports, got n=%d upserts=%d", n, len(w.upserts))
	}
	if w.upserts[0].Slug != "eggy-whey" {
		t.Fatalf("unexpected first product: %+v", w.upserts[0])
	}
	// Decorated price text survives import untouched.
	if w.upserts[1].Price != "$1,049.00" {
		t.Fatalf("expected raw price passthrough, got %v", w.upserts[1].Price)
	}
}

func TestRunSkipsIncompleteRows(t *testing.T) {
	input := strings.Join([]string{
		"slug,name,price",
		",Nameless,10.00",
		"no-name,,10.00",
		"ok,Fine,10.00",
	}, "\n")

	w := &recordingWriter{}
	n, err := NewCSVImporter(strings.NewReader(input), w).Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 import, got %d", n)
	}
}

func TestRunHeaderOrderIndependent(t *testing.T) {
	input := strings.Join([]string{
		"Price,Name,Slug",
		"19.99,Whey,whey",
	}, "\n")

	w := &recordingWriter{}
	n, err := NewCSVImporter(strings.NewReader(input), w).Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 1 || w.upserts[0].Price != "19.99" {
		t.Fatalf("unexpected result: n=%d upserts=%+v", n, w.upserts)
	}
}
