package schema

import "os"

// LoadSnapshotFile reads and parses a YAML schema document.
func LoadSnapshotFile(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, err
	}
	return ParseSnapshot(data)
}

// SaveSnapshotFile writes a snapshot as YAML.
func SaveSnapshotFile(path string, snap Snapshot) error {
	data, err := MarshalSnapshot(snap)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
