package entity

import "fmt"

// ConfigError reports an authored map that uses the engine's object
// vocabulary incorrectly. It is not recoverable at runtime.
type ConfigError struct {
	ObjectID   int
	ObjectName string
	Msg        string
}

func (e *ConfigError) Error() string {
	if e.ObjectName != "" {
		return fmt.Sprintf("entity: object %d (%s): %s", e.ObjectID, e.ObjectName, e.Msg)
	}
	return fmt.Sprintf("entity: object %d: %s", e.ObjectID, e.Msg)
}
