package slot

// Settings slots hold auxiliary scalar values alongside the record
// collections. Dark mode is persisted as the literal string "true"/"false"
// for compatibility with the interchange format.

// DarkMode reads the dark-mode setting from its slot. An absent or
// unrecognized value reads as false.
func DarkMode(s Store, key string) (bool, error) {
	value, ok, err := s.Get(key)
	if err != nil {
		return false, err
	}
	return ok && value == "true", nil
}

// SetDarkMode writes the dark-mode setting to its slot.
func SetDarkMode(s Store, key string, enabled bool) error {
	value := "false"
	if enabled {
		value = "true"
	}
	return s.Set(key, value)
}
