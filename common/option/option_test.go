package option_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/TykTechnologies/tyk-rpc-router/common/option"
)

type settings struct {
	name  string
	order []string
}

func withName(name string) option.Option[settings] {
	return func(s *settings) {
		s.name = name
		s.order = append(s.order, name)
	}
}

func TestOptions_Build(t *testing.T) {
	base := settings{name: "default"}

	got := option.New([]option.Option[settings]{withName("user"), nil}).
		Prepend(withName("fallback")).
		Build(base)

	assert.Equal(t, "user", got.name)
	assert.Equal(t, []string{"fallback", "user"}, got.order)
	assert.Equal(t, "default", base.name)
}
