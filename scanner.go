package maintagent

import (
	"context"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// ScanStorageDevices refreshes the SATA and NVMe presence flags and
// persists them. The two classes are probed concurrently, each inside its
// own failure boundary: an enumeration error for one class defaults that
// class to absent without blocking the other.
func (m *Manager) ScanStorageDevices(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scanStorageDevicesLocked(ctx)
}

func (m *Manager) scanStorageDevicesLocked(ctx context.Context) {
	var hasSata, hasNvme bool
	var g errgroup.Group
	g.Go(func() error {
		hasSata = m.probeClass(ctx, DeviceClassSATA)
		return nil
	})
	g.Go(func() error {
		hasNvme = m.probeClass(ctx, DeviceClassNVMe)
		return nil
	})
	_ = g.Wait()

	m.flags.hasSataDevices = hasSata
	m.flags.hasNvmeDevices = hasNvme
	m.persistStateLocked()
	log.Debug().Bool("sata", hasSata).Bool("nvme", hasNvme).Msg("storage device scan finished")
}

// probeClass enumerates one device class, treating any failure (provider
// missing, tool absent, timeout) as "no devices present".
func (m *Manager) probeClass(ctx context.Context, class DeviceClass) bool {
	devices, err := m.enumerateDevices(ctx, class, probeTimeout)
	if err != nil {
		log.Error().Err(err).Str("class", string(class)).Msg("storage device scan failed")
		return false
	}
	return len(devices) > 0
}
