package helpdesk_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"portal-service/internal/helpdesk"
	"portal-service/internal/store/mocks"
	"portal-service/pkg/apperr"
)

func TestGetProfileFlagsAreIndependent(t *testing.T) {
	cases := []struct {
		name    string
		member  bool
		manages bool
	}{
		{"neither", false, false},
		{"queue member only", true, false},
		{"area manager only", false, true},
		{"both", true, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := new(mocks.MockHelpdeskStore)
			s.On("IsQueueMember", mock.Anything, uint(7)).Return(tc.member, nil)
			s.On("ManagesArea", mock.Anything, uint(7)).Return(tc.manages, nil)

			resolver := helpdesk.NewProfileResolver(s, zap.NewNop())
			profile, err := resolver.GetProfile(context.Background(), 7)
			require.NoError(t, err)

			assert.Equal(t, tc.member, profile.CanReceiveTickets)
			assert.Equal(t, tc.manages, profile.ManagesArea)

			// Derived flags follow the base flags exactly.
			assert.Equal(t, tc.member, profile.CanViewQueues())
			assert.Equal(t, tc.manages, profile.CanViewManagedAreas())
			assert.Equal(t, tc.manages, profile.CanViewTree())
			assert.True(t, profile.CanViewOwnTickets())
		})
	}
}

func TestGetProfileStoreError(t *testing.T) {
	s := new(mocks.MockHelpdeskStore)
	s.On("IsQueueMember", mock.Anything, uint(7)).
		Return(false, apperr.New(apperr.CodeTransient, "store read failed"))

	resolver := helpdesk.NewProfileResolver(s, zap.NewNop())
	profile, err := resolver.GetProfile(context.Background(), 7)
	require.Error(t, err)
	assert.Nil(t, profile)
}
