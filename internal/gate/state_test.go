package gate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"storefront/internal/route"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		class route.Class
		state State
		want  Decision
	}{
		{route.Protected, Unauthenticated, RedirectSignIn},
		{route.Protected, Authenticated, Allow},
		{route.Protected, Unknown, Pending},
		{route.Public, Authenticated, RedirectLanding},
		{route.Public, Unauthenticated, Allow},
		{route.Public, Unknown, Pending},
		{route.Unclassified, Unauthenticated, Allow},
		{route.Unclassified, Authenticated, Allow},
		{route.Unclassified, Unknown, Allow},
	}
	for _, tt := range tests {
		t.Run(tt.class.String()+"/"+tt.state.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.class, tt.state))
		})
	}
}

func TestDecisionLocation(t *testing.T) {
	assert.Equal(t, "/login", RedirectSignIn.Location())
	assert.Equal(t, "/home", RedirectLanding.Location())
	assert.Empty(t, Allow.Location())
	assert.Empty(t, Pending.Location())
}
