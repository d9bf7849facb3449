package site

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlug(t *testing.T) {
	tests := map[string]string{
		"Orders":           "orders",
		"Orders API":       "orders-api",
		"  Payments / EU ": "payments-eu",
		"v2.Billing":       "v2-billing",
		"???":              "unnamed",
	}
	for in, want := range tests {
		assert.Equal(t, want, Slug(in), in)
	}
}

func TestPageURLs(t *testing.T) {
	assert.Equal(t, "/software-systems/orders/", SystemURL("Orders"))
	assert.Equal(t, "/software-systems/orders/dynamic/", SystemPageURL("Orders", TabDynamic))
	assert.Equal(t, "/software-systems/orders/container/", SystemPageURL("Orders", TabStructure))
	assert.Equal(t, "/software-systems/orders/container/orders-api/", ContainerURL("Orders", "Orders API"))
	assert.Equal(t, "software-systems/orders/deployment/index.html", OutputPath(SystemPageURL("Orders", TabDeployment)))
	assert.Equal(t, "index.html", OutputPath(HomeURL))
	assert.Equal(t, "svg/checkout.svg", SVGPath("checkout"))
}

func TestRelative(t *testing.T) {
	tests := []struct {
		from, to, want string
	}{
		{"/", "/", "./"},
		{"/", "/software-systems/", "software-systems/"},
		{"/software-systems/orders/dynamic/", "/software-systems/orders/", "../"},
		{"/software-systems/orders/dynamic/", "/", "../../../"},
		{"/software-systems/orders/dynamic/", "/svg/checkout.svg", "../../../svg/checkout.svg"},
		{"/software-systems/orders/context/", "/software-systems/payments/", "../../payments/"},
		{"/software-systems/orders/", "/software-systems/orders/", "./"},
		{"/software-systems/", "/css/style.css", "../css/style.css"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Relative(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}
