package firmware

import (
	"testing"

	"github.com/rustyeddy/gwmodule/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInstaller struct {
	onSuccess  func(key string)
	onFail     func(key string, status model.FirmwareUpdateStatus)
	installed  []string
	aborted    []string
	version    string
	abortOK    bool
	installErr error
}

func (f *fakeInstaller) InstallFirmware(key, path string) error {
	f.installed = append(f.installed, key+":"+path)
	return f.installErr
}

func (f *fakeInstaller) AbortInstallation(key string) bool {
	f.aborted = append(f.aborted, key)
	return f.abortOK
}

func (f *fakeInstaller) GetFirmwareVersion(key string) (string, error) {
	return f.version, nil
}

func (f *fakeInstaller) SetCallbacks(onSuccess func(key string), onFail func(key string, status model.FirmwareUpdateStatus)) {
	f.onSuccess = onSuccess
	f.onFail = onFail
}

func TestBeginInstallPublishesInstallationBeforeInstaller(t *testing.T) {
	var statuses []model.FirmwareUpdateStatus
	installer := &fakeInstaller{version: "1.2.3"}
	c := NewCoordinator(installer, func(key string, s model.FirmwareUpdateStatus) error {
		statuses = append(statuses, s)
		return nil
	}, func(key, version string) error { return nil }, nil)

	require.NoError(t, c.BeginInstall("device_1", "/tmp/fw.bin"))
	require.Len(t, statuses, 1)
	assert.Equal(t, model.FirmwareInstallation, statuses[0].State())
	assert.Equal(t, []string{"device_1:/tmp/fw.bin"}, installer.installed)
	assert.Equal(t, Installing, c.State("device_1"))
}

func TestInstallSuccessPublishesCompletedThenVersion(t *testing.T) {
	var statuses []model.FirmwareUpdateStatus
	var versions []string
	installer := &fakeInstaller{version: "2.0.0"}
	c := NewCoordinator(installer, func(key string, s model.FirmwareUpdateStatus) error {
		statuses = append(statuses, s)
		return nil
	}, func(key, version string) error {
		versions = append(versions, version)
		return nil
	}, nil)

	require.NoError(t, c.BeginInstall("device_1", "/tmp/fw.bin"))
	installer.onSuccess("device_1")

	require.Len(t, statuses, 2)
	assert.Equal(t, model.FirmwareCompleted, statuses[1].State())
	assert.Equal(t, []string{"2.0.0"}, versions)
	assert.Equal(t, Idle, c.State("device_1"))
}

func TestInstallFailPublishesGivenStatusVerbatim(t *testing.T) {
	var statuses []model.FirmwareUpdateStatus
	installer := &fakeInstaller{}
	c := NewCoordinator(installer, func(key string, s model.FirmwareUpdateStatus) error {
		statuses = append(statuses, s)
		return nil
	}, func(key, version string) error { return nil }, nil)

	require.NoError(t, c.BeginInstall("device_1", "/tmp/fw.bin"))
	errStatus := model.NewFirmwareErrorStatus(model.FirmwareErrFileNotPresent)
	installer.onFail("device_1", errStatus)

	require.Len(t, statuses, 2)
	assert.Equal(t, model.FirmwareError, statuses[1].State())
	code, ok := statuses[1].ErrorCode()
	require.True(t, ok)
	assert.Equal(t, model.FirmwareErrFileNotPresent, code)
	assert.Equal(t, Idle, c.State("device_1"))
}

func TestAbortNotHonoredSendsNoStatus(t *testing.T) {
	var statuses []model.FirmwareUpdateStatus
	installer := &fakeInstaller{abortOK: false}
	c := NewCoordinator(installer, func(key string, s model.FirmwareUpdateStatus) error {
		statuses = append(statuses, s)
		return nil
	}, func(key, version string) error { return nil }, nil)

	require.NoError(t, c.AbortInstall("device_1"))
	assert.Empty(t, statuses)
	assert.Equal(t, []string{"device_1"}, installer.aborted)
}

func TestAbortHonoredPublishesAborted(t *testing.T) {
	var statuses []model.FirmwareUpdateStatus
	installer := &fakeInstaller{abortOK: true}
	c := NewCoordinator(installer, func(key string, s model.FirmwareUpdateStatus) error {
		statuses = append(statuses, s)
		return nil
	}, func(key, version string) error { return nil }, nil)

	require.NoError(t, c.AbortInstall("device_1"))
	require.Len(t, statuses, 1)
	assert.Equal(t, model.FirmwareAborted, statuses[0].State())
}
