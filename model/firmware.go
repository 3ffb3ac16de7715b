package model

import "fmt"

// FirmwareUpdateState is the lifecycle state of a firmware install.
type FirmwareUpdateState string

const (
	FirmwareInstallation FirmwareUpdateState = "INSTALLATION"
	FirmwareCompleted    FirmwareUpdateState = "COMPLETED"
	FirmwareError        FirmwareUpdateState = "ERROR"
	FirmwareAborted      FirmwareUpdateState = "ABORTED"
)

// FirmwareUpdateErrorCode enumerates the reasons a firmware install failed.
type FirmwareUpdateErrorCode int

const (
	FirmwareErrUnspecified FirmwareUpdateErrorCode = iota
	FirmwareErrFileNotPresent
	FirmwareErrFileSystemError
	FirmwareErrInstallationFailed
	FirmwareErrDeviceNotPresent
)

// FirmwareUpdateStatus pairs a lifecycle state with an optional error
// code. The error code is present if and only if the state is
// FirmwareError; that invariant is enforced at construction rather than
// left as a caller obligation (Design Note: error code coupled to state).
type FirmwareUpdateStatus struct {
	state     FirmwareUpdateState
	errorCode FirmwareUpdateErrorCode
	hasError  bool
}

// NewFirmwareUpdateStatus builds a non-error status.
func NewFirmwareUpdateStatus(state FirmwareUpdateState) (FirmwareUpdateStatus, error) {
	if state == FirmwareError {
		return FirmwareUpdateStatus{}, fmt.Errorf("firmware update status: state ERROR requires an error code, use NewFirmwareErrorStatus")
	}
	if !validFirmwareState(state) {
		return FirmwareUpdateStatus{}, fmt.Errorf("firmware update status: unknown state %q", state)
	}
	return FirmwareUpdateStatus{state: state}, nil
}

// NewFirmwareErrorStatus builds an ERROR status carrying its error code.
func NewFirmwareErrorStatus(code FirmwareUpdateErrorCode) FirmwareUpdateStatus {
	return FirmwareUpdateStatus{state: FirmwareError, errorCode: code, hasError: true}
}

func validFirmwareState(s FirmwareUpdateState) bool {
	switch s {
	case FirmwareInstallation, FirmwareCompleted, FirmwareError, FirmwareAborted:
		return true
	default:
		return false
	}
}

func (f FirmwareUpdateStatus) State() FirmwareUpdateState { return f.state }

// ErrorCode returns the status's error code and whether one is present.
func (f FirmwareUpdateStatus) ErrorCode() (FirmwareUpdateErrorCode, bool) {
	return f.errorCode, f.hasError
}
