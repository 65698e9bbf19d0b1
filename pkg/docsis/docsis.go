// Package docsis extracts cable-modem signal and health metrics from a raw
// device-state JSON tree.
package docsis

import (
	"errors"
	"math"

	"github.com/tidwall/gjson"
)

var ErrNoChannelData = errors.New("no DOCSIS channel data in device tree")

// Metrics is the per-poll snapshot that gets published, one metric per topic.
// Field order matches topic order on the wire.
type Metrics struct {
	Status      string     `json:"status"`
	IPv4Address string     `json:"ipv4_address"`
	Downstream  Downstream `json:"downstream"`
	Upstream    Upstream   `json:"upstream"`
	System      System     `json:"system"`
}

type Downstream struct {
	PowerAvg float64 `json:"power_avg_dbmv"`
	PowerMin float64 `json:"power_min_dbmv"`
	PowerMax float64 `json:"power_max_dbmv"`
	SNRAvg   float64 `json:"snr_avg_db"`
	Channels int     `json:"channels"`

	// Raw counter sums; the daemon converts these into per-minute rates
	// before publishing.
	CorrectableSum   int64 `json:"correctable_sum"`
	UncorrectableSum int64 `json:"uncorrectable_sum"`
}

type Upstream struct {
	PowerAvg float64 `json:"power_avg_dbmv"`
	PowerMin float64 `json:"power_min_dbmv"`
	PowerMax float64 `json:"power_max_dbmv"`
	Channels int     `json:"channels"`
}

type System struct {
	CPUUsage      int64   `json:"cpu_usage"`
	LoadAverage1m float64 `json:"load_average_1m"`
	FreeMemoryPct int64   `json:"free_memory_percentage"`
}

// Metadata identifies the modem itself. It is logged, never published.
type Metadata struct {
	SerialNumber    string `json:"serial_number"`
	Manufacturer    string `json:"manufacturer"`
	ModelNumber     string `json:"model_number"`
	MACAddress      string `json:"mac_address"`
	HardwareVersion string `json:"hardware_version"`
	SoftwareVersion string `json:"software_version"`
}

// Parse walks the raw device tree (the JSON returned for the "Device" xpath)
// and aggregates channel statistics. It returns ErrNoChannelData when the
// tree has neither downstream nor upstream channels, which usually means the
// modem is not in DOCSIS mode.
func Parse(raw []byte) (*Metrics, *Metadata, error) {
	root := gjson.ParseBytes(raw)

	cable := root.Get("device.docsis.cable_modem")
	downstreams := cable.Get("downstreams").Array()
	upstreams := cable.Get("upstreams").Array()
	if len(downstreams) == 0 && len(upstreams) == 0 {
		return nil, nil, ErrNoChannelData
	}

	dsPower := channelValues(downstreams, "power_level")
	usPower := channelValues(upstreams, "power_level")
	dsSNR := channelValues(downstreams, "SNR")

	m := &Metrics{
		Status:      statusOrUnknown(cable.Get("status")),
		IPv4Address: wanIPv4(root),
		Downstream: Downstream{
			PowerAvg:         round(avg(dsPower), 1),
			PowerMin:         round(min(dsPower), 1),
			PowerMax:         round(max(dsPower), 1),
			SNRAvg:           round(avg(dsSNR), 2),
			Channels:         len(downstreams),
			CorrectableSum:   channelSum(downstreams, "correctable_codewords"),
			UncorrectableSum: channelSum(downstreams, "uncorrectable_codewords"),
		},
		Upstream: Upstream{
			PowerAvg: round(avg(usPower), 1),
			PowerMin: round(min(usPower), 1),
			PowerMax: round(max(usPower), 1),
			Channels: len(upstreams),
		},
	}

	info := root.Get("device.device_info")
	process := info.Get("process_status")
	m.System = System{
		CPUUsage:      process.Get("cpu_usage").Int(),
		LoadAverage1m: round(process.Get("load_average.load1").Float(), 2),
		FreeMemoryPct: info.Get("memory_status.free_memory_percentage").Int(),
	}

	meta := &Metadata{
		SerialNumber:    info.Get("serial_number").String(),
		Manufacturer:    info.Get("manufacturer").String(),
		ModelNumber:     info.Get("model_number").String(),
		MACAddress:      info.Get("mac_address").String(),
		HardwareVersion: info.Get("hardware_version").String(),
		SoftwareVersion: info.Get("software_version").String(),
	}

	return m, meta, nil
}

// wanIPv4 finds the WAN address: the IPv4 address aliased IP_DATA_ADDRESS on
// any IP interface.
func wanIPv4(root gjson.Result) string {
	var found string
	root.Get("device.IP.interfaces").ForEach(func(_, iface gjson.Result) bool {
		iface.Get("i_pv4_addresses").ForEach(func(_, addr gjson.Result) bool {
			if addr.Get("alias").String() == "IP_DATA_ADDRESS" {
				found = addr.Get("ip_address").String()
				return false
			}
			return true
		})
		return found == ""
	})
	return found
}

func statusOrUnknown(v gjson.Result) string {
	if !v.Exists() || v.String() == "" {
		return "UNKNOWN"
	}
	return v.String()
}

// channelValues collects the named numeric field from every channel that has
// a non-empty value for it.
func channelValues(channels []gjson.Result, field string) []float64 {
	var vals []float64
	for _, ch := range channels {
		v := ch.Get(field)
		if v.Exists() && v.String() != "" {
			vals = append(vals, v.Float())
		}
	}
	return vals
}

func channelSum(channels []gjson.Result, field string) int64 {
	var sum int64
	for _, ch := range channels {
		v := ch.Get(field)
		if v.Exists() && v.String() != "" {
			sum += v.Int()
		}
	}
	return sum
}

func avg(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

func min(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func max(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	m := vals[0]
	for _, v := range vals[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func round(v float64, places int) float64 {
	scale := math.Pow10(places)
	return math.Round(v*scale) / scale
}
