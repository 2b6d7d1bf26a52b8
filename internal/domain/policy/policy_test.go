package policy_test

import (
	"testing"

	"app/internal/domain/model"
	"app/internal/domain/policy"

	"github.com/stretchr/testify/assert"
)

func TestIsAuthenticated(t *testing.T) {
	assert.False(t, policy.IsAuthenticated(nil))
	assert.False(t, policy.IsAuthenticated(&policy.Actor{ID: 0}))
	assert.True(t, policy.IsAuthenticated(&policy.Actor{ID: 1}))
}

func TestIsManagerOrAdmin_AnonymousDenied(t *testing.T) {
	//匿名はエラーではなく拒否
	assert.False(t, policy.IsManagerOrAdmin(nil))
}

func TestIsManagerOrAdmin(t *testing.T) {
	manager := &policy.Actor{ID: 1, Groups: []string{model.GroupManager}}
	admin := &policy.Actor{ID: 2, IsAdmin: true}
	crew := &policy.Actor{ID: 3, Groups: []string{model.GroupDeliveryCrew}}
	customer := &policy.Actor{ID: 4}

	assert.True(t, policy.IsManagerOrAdmin(manager))
	assert.True(t, policy.IsManagerOrAdmin(admin))
	assert.False(t, policy.IsManagerOrAdmin(crew))
	assert.False(t, policy.IsManagerOrAdmin(customer))
}

func TestCanModifyOrderStatus(t *testing.T) {
	manager := &policy.Actor{ID: 1, Groups: []string{model.GroupManager}}
	admin := &policy.Actor{ID: 2, IsAdmin: true}
	crew := &policy.Actor{ID: 3, Groups: []string{model.GroupDeliveryCrew}}
	customer := &policy.Actor{ID: 4}

	assert.True(t, policy.CanModifyOrderStatus(manager))
	assert.True(t, policy.CanModifyOrderStatus(admin))
	assert.True(t, policy.CanModifyOrderStatus(crew))
	assert.False(t, policy.CanModifyOrderStatus(customer))
	assert.False(t, policy.CanModifyOrderStatus(nil))
}

func TestHasGroup(t *testing.T) {
	crew := &policy.Actor{ID: 3, Groups: []string{model.GroupDeliveryCrew}}

	assert.True(t, crew.HasGroup(model.GroupDeliveryCrew))
	assert.False(t, crew.HasGroup(model.GroupManager))

	var nobody *policy.Actor
	assert.False(t, nobody.HasGroup(model.GroupManager))
}
