package contract

import "errors"

var (
	ErrContractNotFound = errors.New("contract not found")
	ErrNoActiveContract = errors.New("employee has no active contract")
)
