package error

import (
	"errors"
	"fmt"
	"testing"
)

func TestBaseErrorTypes(t *testing.T) {
	if ErrFileNotFound.Error() != "file not found" {
		t.Errorf("ErrFileNotFound has unexpected message: %s", ErrFileNotFound.Error())
	}
	if ErrDuplicateStore.Error() != "store with this name and owner already exists" {
		t.Errorf("ErrDuplicateStore has unexpected message: %s", ErrDuplicateStore.Error())
	}
}

func TestErrorCode(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{"InvalidRequest", ErrInvalidRequest, 4000},
		{"InvalidFile", ErrInvalidFile, 4001},
		{"FileTooLarge", ErrFileTooLarge, 4002},
		{"InvalidTransition", ErrInvalidStatusTransition, 4003},
		{"FileRejected", ErrFileRejected, 4004},
		{"DuplicateStore", ErrDuplicateStore, 4005},
		{"FileNotFound", ErrFileNotFound, 4040},
		{"StoreNotFound", ErrStoreNotFound, 4041},
		{"ObjectNotFound", ErrObjectNotFound, 4042},
		{"FileInFlight", ErrFileInFlight, 4090},
		{"Database", ErrDatabaseConnection, 5001},
		{"Storage", ErrStorageUnavailable, 5002},
		{"QueueFull", ErrQueueFull, 5003},
		{"UnknownError", errors.New("unknown error"), 5000},
		{"WrappedError", fmt.Errorf("wrapped: %w", ErrStoreNotFound), 4041},
		{"RejectionFailure", NewRejectionFailure("f1", CauseStructural, "bad line"), 4004},
		{"NotFoundFailure", NewNotFoundFailure("f1"), 4040},
		{"InfrastructureFailure", NewInfrastructureFailure("f1", ErrStorageUnavailable), 5002},
		{"InfrastructureFailureUnknown", NewInfrastructureFailure("f1", errors.New("boom")), 5000},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			code := ErrorCode(tc.err)
			if code != tc.expected {
				t.Errorf("ErrorCode(%v) = %d, want %d", tc.err, code, tc.expected)
			}
		})
	}
}

func TestFailureCauseClass(t *testing.T) {
	testCases := []struct {
		cause    FailureCause
		expected FailureClass
	}{
		{CauseStructural, Permanent},
		{CauseBusinessRule, Permanent},
		{CauseNotFound, Permanent},
		{CausePreviouslyRejected, Permanent},
		{CauseInfrastructure, Transient},
	}

	for _, tc := range testCases {
		t.Run(string(tc.cause), func(t *testing.T) {
			if got := tc.cause.Class(); got != tc.expected {
				t.Errorf("%s.Class() = %s, want %s", tc.cause, got, tc.expected)
			}
		})
	}
}

func TestProcessingFailure(t *testing.T) {
	dbErr := fmt.Errorf("%w: connection refused", ErrDatabaseConnection)
	failure := NewInfrastructureFailure("file-1", dbErr)

	if !errors.Is(failure, ErrDatabaseConnection) {
		t.Errorf("errors.Is(failure, ErrDatabaseConnection) = false, want true")
	}
	if !IsTransient(failure) {
		t.Errorf("IsTransient(infrastructure failure) = false, want true")
	}

	wrapped := fmt.Errorf("worker: %w", failure)
	pf, ok := AsProcessingFailure(wrapped)
	if !ok {
		t.Fatalf("AsProcessingFailure did not unwrap the failure")
	}
	if pf.FileID != "file-1" {
		t.Errorf("FileID = %s, want file-1", pf.FileID)
	}

	expected := "processing failed for file file-1 (infrastructure): database connection error: connection refused"
	if failure.Error() != expected {
		t.Errorf("Error() = %s, want %s", failure.Error(), expected)
	}

	fields := pf.LogFields()
	if fields["class"] != "transient" {
		t.Errorf("LogFields()[class] = %v, want transient", fields["class"])
	}
	if fields["error_code"] != CodeDatabaseConnection {
		t.Errorf("LogFields()[error_code] = %v, want %d", fields["error_code"], CodeDatabaseConnection)
	}
}

func TestRejectionFailure(t *testing.T) {
	failure := NewRejectionFailure("file-2", CauseBusinessRule, "line 1: amount must be greater than zero")

	if IsTransient(failure) {
		t.Errorf("IsTransient(rejection) = true, want false")
	}
	if !errors.Is(failure, ErrFileRejected) {
		t.Errorf("errors.Is(failure, ErrFileRejected) = false, want true")
	}

	expected := "processing failed for file file-2 (business_rule): line 1: amount must be greater than zero"
	if failure.Error() != expected {
		t.Errorf("Error() = %s, want %s", failure.Error(), expected)
	}
}

func TestStatusTransitionError(t *testing.T) {
	err := NewStatusTransitionError("file-3", "Processed", "Processing")

	if !errors.Is(err, ErrInvalidStatusTransition) {
		t.Errorf("errors.Is(err, ErrInvalidStatusTransition) = false, want true")
	}
	if err.Error() != "file file-3 cannot move from Processed to Processing" {
		t.Errorf("unexpected message: %s", err.Error())
	}
}

func TestPredicates(t *testing.T) {
	if !IsNotFoundError(fmt.Errorf("lookup: %w", ErrObjectNotFound)) {
		t.Errorf("IsNotFoundError(wrapped ErrObjectNotFound) = false, want true")
	}
	if IsNotFoundError(ErrDatabaseConnection) {
		t.Errorf("IsNotFoundError(ErrDatabaseConnection) = true, want false")
	}
	if !IsTransient(ErrStorageUnavailable) {
		t.Errorf("IsTransient(ErrStorageUnavailable) = false, want true")
	}
	if IsTransient(NewNotFoundFailure("x")) {
		t.Errorf("IsTransient(not found) = true, want false")
	}
	if !IsDuplicateStoreError(fmt.Errorf("insert: %w", ErrDuplicateStore)) {
		t.Errorf("IsDuplicateStoreError(wrapped) = false, want true")
	}
}
