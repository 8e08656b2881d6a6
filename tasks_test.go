package maintagent

import "testing"

func TestRegistryIsFixedAndConsistent(t *testing.T) {
	tasks, order := initializeTasks()
	if len(tasks) != 10 || len(order) != 10 {
		t.Fatalf("want 10 registered tasks, got %d (%d ordered)", len(tasks), len(order))
	}
	seen := make(map[string]bool)
	for _, id := range order {
		if seen[id] {
			t.Fatalf("duplicate task id %s", id)
		}
		seen[id] = true
		task, ok := tasks[id]
		if !ok {
			t.Fatalf("ordered id %s missing from map", id)
		}
		if task.ID != id {
			t.Fatalf("task id mismatch: key %s vs %s", id, task.ID)
		}
		if task.Status != StatusPending {
			t.Fatalf("task %s should start pending, got %s", id, task.Status)
		}
		if task.Strategy == nil {
			t.Fatalf("task %s has no execution strategy", id)
		}
		if len(task.Commands) == 0 {
			t.Fatalf("task %s has no commands", id)
		}
	}
}

func TestRegistryStrategies(t *testing.T) {
	tasks, _ := initializeTasks()

	disk, ok := tasks[TaskCheckDiskHealth].Strategy.(PerDeviceDiagnostic)
	if !ok || disk.Class != DeviceClassSATA {
		t.Fatalf("disk health should be a SATA per-device task, got %#v", tasks[TaskCheckDiskHealth].Strategy)
	}
	nvme, ok := tasks[TaskCheckNvmeHealth].Strategy.(PerDeviceDiagnostic)
	if !ok || nvme.Class != DeviceClassNVMe {
		t.Fatalf("nvme health should be an NVMe per-device task, got %#v", tasks[TaskCheckNvmeHealth].Strategy)
	}
	if _, ok := tasks[TaskCleanBrowserCache].Strategy.(FixedCommands); !ok {
		t.Fatalf("browser cache cleanup should run commands individually")
	}
	for _, id := range []string{TaskUpdatePackages, TaskCleanTempFiles, TaskUpdateFirmware} {
		if _, ok := tasks[id].Strategy.(BatchElevated); !ok {
			t.Fatalf("%s should use the elevated batch strategy", id)
		}
		if !tasks[id].RequiresSudo {
			t.Fatalf("%s should require elevation", id)
		}
	}
}

func TestPriorityOrdering(t *testing.T) {
	if !(PriorityLow < PriorityMedium && PriorityMedium < PriorityHigh && PriorityHigh < PriorityCritical) {
		t.Fatalf("priorities must be ordered low < medium < high < critical")
	}
	if PriorityCritical.String() != "critical" || PriorityLow.String() != "low" {
		t.Fatalf("priority labels wrong: %s %s", PriorityCritical, PriorityLow)
	}
}
