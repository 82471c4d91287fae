package main

import "os"

// writeOutput writes payload to path, or to stdout when path is empty.
func writeOutput(path string, payload []byte) error {
	if path == "" {
		if _, err := os.Stdout.Write(payload); err != nil {
			return err
		}
		_, err := os.Stdout.Write([]byte("\n"))
		return err
	}
	return os.WriteFile(path, append(payload, '\n'), 0o644)
}
