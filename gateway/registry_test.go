package gateway

import (
	"testing"

	"github.com/rustyeddy/gwmodule/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDevice(t *testing.T, key string) *model.Device {
	dev, err := model.NewDevice(key, key, model.NewDeviceTemplate())
	require.NoError(t, err)
	return dev
}

func TestRegistryAddRejectsDuplicateKey(t *testing.T) {
	r := newRegistry()
	assert.True(t, r.add(newTestDevice(t, "d1")))
	assert.False(t, r.add(newTestDevice(t, "d1")))
}

func TestRegistryRemoveUnknownKey(t *testing.T) {
	r := newRegistry()
	assert.False(t, r.remove("missing"))
}

func TestRegistryKeysAndAll(t *testing.T) {
	r := newRegistry()
	r.add(newTestDevice(t, "d1"))
	r.add(newTestDevice(t, "d2"))
	assert.Len(t, r.keys(), 2)
	assert.Len(t, r.all(), 2)
}

func TestRegistryLastRegistrationResult(t *testing.T) {
	r := newRegistry()
	r.add(newTestDevice(t, "d1"))
	_, _, ok := r.lastRegistrationResult("d1")
	assert.False(t, ok)

	r.setLastResult("d1", model.ResultErrorKeyConflict, "already registered")
	result, desc, ok := r.lastRegistrationResult("d1")
	require.True(t, ok)
	assert.Equal(t, model.ResultErrorKeyConflict, result)
	assert.Equal(t, "already registered", desc)
}

func TestRegistryRemoveClearsLastResult(t *testing.T) {
	r := newRegistry()
	r.add(newTestDevice(t, "d1"))
	r.setLastResult("d1", model.ResultOK, "")
	r.remove("d1")
	_, _, ok := r.lastRegistrationResult("d1")
	assert.False(t, ok)
}
