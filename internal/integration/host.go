package integration

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// HostSnapshot 服务器资源占用
type HostSnapshot struct {
	CapturedAt       time.Time `json:"capturedAt"`
	CPUPercent       float64   `json:"cpuPercent"`
	MemoryTotalBytes uint64    `json:"memoryTotalBytes"`
	MemoryUsedBytes  uint64    `json:"memoryUsedBytes"`
	MemoryPercent    float64   `json:"memoryPercent"`
	DiskPath         string    `json:"diskPath"`
	DiskTotalBytes   uint64    `json:"diskTotalBytes"`
	DiskUsedBytes    uint64    `json:"diskUsedBytes"`
	DiskPercent      float64   `json:"diskPercent"`
	UptimeSeconds    uint64    `json:"uptimeSeconds"`
}

// HostStats 通过 gopsutil 采集本机 CPU、内存与磁盘占用
type HostStats struct {
	diskPath string
}

// NewHostStats 构造 HostStats，diskPath 为空时统计根分区
func NewHostStats(diskPath string) *HostStats {
	path := strings.TrimSpace(diskPath)
	if path == "" {
		path = "/"
	}
	return &HostStats{diskPath: path}
}

// Snapshot 采集一次资源占用。单项失败只记录日志，全部失败时返回 nil
func (h *HostStats) Snapshot(ctx context.Context) (*HostSnapshot, error) {
	if h == nil {
		return nil, nil
	}

	snapshot := &HostSnapshot{CapturedAt: time.Now().UTC(), DiskPath: h.diskPath}
	collected := false

	if percents, err := cpu.PercentWithContext(ctx, 0, false); err != nil {
		log.Printf("[host] cpu usage unavailable: %v", err)
	} else if len(percents) > 0 {
		snapshot.CPUPercent = percents[0]
		collected = true
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err != nil {
		log.Printf("[host] memory usage unavailable: %v", err)
	} else {
		snapshot.MemoryTotalBytes = vm.Total
		snapshot.MemoryUsedBytes = vm.Total - vm.Available
		snapshot.MemoryPercent = vm.UsedPercent
		collected = true
	}

	usage, err := disk.UsageWithContext(ctx, h.diskPath)
	if err != nil && h.diskPath != "/" {
		snapshot.DiskPath = "/"
		usage, err = disk.UsageWithContext(ctx, "/")
	}
	if err != nil {
		log.Printf("[host] disk usage unavailable: %v", err)
	} else {
		snapshot.DiskTotalBytes = usage.Total
		snapshot.DiskUsedBytes = usage.Used
		snapshot.DiskPercent = usage.UsedPercent
		collected = true
	}

	if uptime, err := host.UptimeWithContext(ctx); err == nil {
		snapshot.UptimeSeconds = uptime
	}

	if !collected {
		return nil, nil
	}
	return snapshot, nil
}
