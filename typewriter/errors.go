package typewriter

import "errors"

var (
	ErrNoContainer       = errors.New("no container element was provided")
	ErrContainerNotFound = errors.New("could not find container element")
	ErrNoHost            = errors.New("no host was provided")

	ErrNoDeleteSpeed = errors.New("must provide new delete speed")
	ErrNoDelay       = errors.New("must provide new delay")
	ErrNoCursor      = errors.New("must provide new cursor")
	ErrNotCallable   = errors.New("callback must be a function")
	ErrNoAmount      = errors.New("must provide amount of characters to delete")
	ErrNotCharacters = errors.New("characters must be an array")
)
