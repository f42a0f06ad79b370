package detect

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadLabels(t *testing.T) {

	dir := t.TempDir()
	file := filepath.Join(dir, "labels.txt")

	content := []byte("person\nbicycle\ncar\n\nmotorcycle\n")

	if err := os.WriteFile(file, content, 0644); err != nil {
		t.Fatalf("error writing labels file: %v", err)
	}

	labels, err := LoadLabels(file)

	if err != nil {
		t.Fatalf("error loading labels: %v", err)
	}

	// blank line is skipped
	if len(labels) != 4 {
		t.Fatalf("expected 4 labels, got %d", len(labels))
	}

	if labels[2] != "car" || labels[3] != "motorcycle" {
		t.Errorf("unexpected labels %v", labels)
	}
}

func TestLoadLabelsMissingFile(t *testing.T) {

	_, err := LoadLabels(filepath.Join(t.TempDir(), "missing.txt"))

	if err == nil {
		t.Errorf("expected error for missing file")
	}
}

func TestVehicleClasses(t *testing.T) {

	// COCO vehicle classes
	for _, id := range []int{2, 3, 5, 7} {
		if !VehicleClasses[id] {
			t.Errorf("expected class %d to be a vehicle", id)
		}
	}

	// person is not a vehicle
	if VehicleClasses[0] {
		t.Errorf("class 0 must not be a vehicle")
	}
}

func TestClassName(t *testing.T) {

	d := &Detector{labels: []string{"person", "bicycle", "car"}}

	if got := d.className(2); got != "car" {
		t.Errorf("expected car, got %s", got)
	}

	if got := d.className(99); got != "unknown" {
		t.Errorf("expected unknown for out of range id, got %s", got)
	}

	if got := d.className(-1); got != "unknown" {
		t.Errorf("expected unknown for negative id, got %s", got)
	}
}
