package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vtcwoerden/materiaal-api/internal/domain/entity"
)

func TestCanView(t *testing.T) {
	assert.True(t, New(Session{}, true).CanView(), "anonymous with public access")
	assert.False(t, New(Session{}, false).CanView(), "anonymous without public access")
	assert.True(t, New(Session{LoggedIn: true, Role: entity.RoleViewer}, false).CanView())
}

func TestCanManage(t *testing.T) {
	cases := []struct {
		role string
		want bool
	}{
		{entity.RoleAdmin, true},
		{entity.RoleManager, true},
		{entity.RoleViewer, false},
	}
	for _, tc := range cases {
		p := New(Session{LoggedIn: true, Role: tc.role}, true)
		assert.Equal(t, tc.want, p.CanManage(), tc.role)
		assert.Equal(t, tc.want, p.CanExport(), tc.role)
	}
	assert.False(t, New(Session{}, true).CanManage(), "anonymous never manages")
}

func TestCanAdminister(t *testing.T) {
	assert.True(t, New(Session{LoggedIn: true, Role: entity.RoleAdmin}, false).CanAdminister())
	assert.False(t, New(Session{LoggedIn: true, Role: entity.RoleManager}, false).CanAdminister())
	assert.False(t, New(Session{}, true).CanAdminister())
}
