package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"io"
	"strconv"

	"github.com/rogerio-castellano/product-catalog/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(
	template.New("").
		Funcs(template.FuncMap{"price": formatPrice}).
		ParseFS(templateFS, "templates/*.html"),
)

func formatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

// HomeView is the product list page. It renders a loading indicator until
// Load has succeeded.
type HomeView struct {
	client   *Client
	loaded   bool
	products []models.Product
}

func NewHomeView(client *Client) *HomeView {
	return &HomeView{client: client}
}

func (v *HomeView) Load(ctx context.Context) error {
	products, err := v.client.ListProducts(ctx)
	if err != nil {
		return err
	}
	v.products = products
	v.loaded = true
	return nil
}

func (v *HomeView) Loading() bool { return !v.loaded }

func (v *HomeView) Products() []models.Product { return v.products }

func (v *HomeView) Render(w io.Writer) error {
	return templates.ExecuteTemplate(w, "home.html", v)
}

// ProductView is the product detail page.
type ProductView struct {
	client   *Client
	id       string
	loaded   bool
	notFound bool
	product  models.Product
}

func NewProductView(client *Client, id string) *ProductView {
	return &ProductView{client: client, id: id}
}

// Load fetches the product. A missing product is a loaded state, not an error.
func (v *ProductView) Load(ctx context.Context) error {
	product, err := v.client.GetProduct(ctx, v.id)
	if errors.Is(err, ErrProductNotFound) {
		v.loaded = true
		v.notFound = true
		return nil
	}
	if err != nil {
		return err
	}
	v.product = product
	v.loaded = true
	return nil
}

func (v *ProductView) Loading() bool { return !v.loaded }

func (v *ProductView) NotFound() bool { return v.notFound }

func (v *ProductView) Product() models.Product { return v.product }

func (v *ProductView) Render(w io.Writer) error {
	return templates.ExecuteTemplate(w, "product.html", v)
}
