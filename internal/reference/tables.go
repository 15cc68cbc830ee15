package reference

import (
	"math"

	"github.com/spec-kit/casegen/internal/domain"
	"github.com/spec-kit/casegen/pkg/util"
)

// LogNormalParams are the location and scale of a log-normal distribution
// (mean and standard deviation of the underlying normal).
type LogNormalParams struct {
	Mu    float64
	Sigma float64
}

// Tables holds every lookup list used by the synthesizer. Weight slices are
// aligned by index with the label slice of the same name.
type Tables struct {
	Regions       []domain.Region
	RegionWeights []float64

	Statuses      []domain.CaseStatus
	StatusWeights []float64

	Priorities      []domain.CasePriority
	PriorityWeights []float64

	ScreenStatuses      []domain.ScreenStatus
	ScreenStatusWeights []float64

	Types       []domain.RequestType
	TypeWeights []float64

	Categories     []string
	ReportedIssues []string
	Resolutions    []string

	Severities         map[domain.CasePriority][]string
	Sites              map[domain.Region][]string
	Markets            map[domain.Region][]string
	States             map[domain.Region][]string
	Queues             map[domain.Region][]string
	BaseTime           map[domain.CasePriority]LogNormalParams
	RegionalMultiplier map[domain.Region]float64
}

// Default returns the built-in reference tables. Each call returns a fresh
// copy so callers cannot mutate shared state.
func Default() Tables {
	return Tables{
		Regions:       []domain.Region{domain.RegionAPAC, domain.RegionEMEA, domain.RegionAmericas},
		RegionWeights: []float64{0.35, 0.35, 0.30},

		Statuses: []domain.CaseStatus{
			domain.CaseStatusSolving, domain.CaseStatusUnderReview,
			domain.CaseStatusResolved, domain.CaseStatusClosed,
		},
		StatusWeights: []float64{0.40, 0.25, 0.25, 0.10},

		Priorities: []domain.CasePriority{
			domain.CasePriorityCritical, domain.CasePriorityMajor,
			domain.CasePriorityMinor, domain.CasePriorityInformational,
		},
		PriorityWeights: []float64{0.10, 0.50, 0.30, 0.10},

		ScreenStatuses: []domain.ScreenStatus{
			domain.ScreenStatusUp, domain.ScreenStatusDown, domain.ScreenStatusPleaseSpecify,
		},
		ScreenStatusWeights: []float64{0.85, 0.10, 0.05},

		Types:       []domain.RequestType{domain.RequestTypeEmail, domain.RequestTypeWeb, domain.RequestTypePhone},
		TypeWeights: []float64{0.70, 0.20, 0.10},

		Categories: []string{
			"Projector", "Audio", "Screen / Masking", "Automation",
			"Screen Corridor", "Facility", "Qalif", "Network",
		},
		ReportedIssues: []string{
			"IMAGE GEOMETRY/ALIGNMENT ISSUE", "Laser Module Driver Warning",
			"NO IMAGE", "INTERMITTENT AUDIO", "Hardware Issues",
			"PLAYBACK STOPPED UNEXPECTEDLY", "Disk Capacity Warning",
			"CAN NOT POWER-UP COMPONENT", "Booth Audio Monitor Issue",
			"Network Connectivity Issue", "Color Calibration Required",
			"IMAGE DISCOLORATION", "IMPROPER AUDIO LEVEL", "TPC Display Issue",
			"Software Not Responding", "Application Not Responding",
			"Screen Shaker Vibration", "UPS Issue", "Content Update Request",
			"Auditorium Lighting Issue", "Booth Temperature Issue",
		},
		Resolutions: []string{
			"Pending Resolution", "Replaced Component", "Power cycled / Reboot Server",
			"Adjusted Settings", "Replaced UPS Batteries", "Software Update Applied",
			"Hardware Replaced", "Recalibrated System", "Firmware Updated",
			"Network Configuration Fixed", "Replaced Qalif",
		},

		Severities: map[domain.CasePriority][]string{
			domain.CasePriorityCritical:      {"High (Critical)"},
			domain.CasePriorityMajor:         {"Medium (Major)", "High (Major)"},
			domain.CasePriorityMinor:         {"Low (Minor)", "Medium (Minor)"},
			domain.CasePriorityInformational: {"Low (Minor)"},
		},
		Sites: map[domain.Region][]string{
			domain.RegionAPAC: {
				"CGV Shanghai Fudi", "CGV Beijing Wanda", "CGV Seoul Gangnam",
				"Wanda Changsha", "Wanda Jiaxing", "Wanda Shanghai Darongcheng",
				"Wanda Chengdu Wuhou", "Wanda XiAn Gaoxin",
				"Golden Harvest Hong Kong", "SF Cinema Tokyo",
				"Lotte Cinema Seoul", "Major Cineplex Bangkok",
			},
			domain.RegionEMEA: {
				"Vue Eindhoven", "Vue Hilversum", "Vue London Leicester Square",
				"Odeon Thorpe Park", "Odeon Leicester Square",
				"Pathe Rouen Docks 76", "Pathe Belle Epine - Thiais",
				"Pathe Gaumont Rennes", "Pathe Massy", "Pathe Nice Gare Du Sud",
				"Cineworld Birmingham", "Kinopolis Munich",
				"KNCC Cinescape Avenues", "Muvi Mall of Dhahran",
			},
			domain.RegionAmericas: {
				"AMC Empire 25 - 0552", "AMC Lincoln Square 13 - 2310",
				"AMC Mission Valley 20 - 0246", "AMC Jersey Gardens 20 - 2198",
				"AMC Staten Island Mall 11 - 0558", "AMC Newport On The Levee 20 - 0665",
				"AMC Dine-In Thoroughbred 20 - 4457",
				"Cinemark Century City", "Cinemark Playa Vista",
				"Regal LA Live", "Dolby Burbank Umlang", "Dolby Headquarters 1",
			},
		},
		Markets: map[domain.Region][]string{
			domain.RegionAPAC: {
				"Market-China-CGV", "Market-Korea", "Market-Japan",
				"Market-Hong Kong", "Market-Singapore", "Market-Thailand",
			},
			domain.RegionEMEA: {
				"Market-Netherlands-CN-CDS-VG", "Market-UK-CDS-VUK-CDS",
				"Market-France-ADDE-CDS", "Market-Kuwait", "Market-Germany",
				"Market-Saudi Arabia",
			},
			domain.RegionAmericas: {
				"Market-NY", "Market-CA", "Market-SAD", "Market-LA",
				"Market-NJ", "Market-COLOH", "Market-NSH", "Market-SAF",
			},
		},
		States: map[domain.Region][]string{
			domain.RegionAmericas: {"CA", "NY", "NJ", "TX", "TN", "KY", "OH"},
			domain.RegionEMEA:     {"France", "England", "Netherlands", "Kuwait", "Germany"},
			domain.RegionAPAC:     {"China", "Korea", "Japan", "Singapore", "Thailand"},
		},
		Queues: map[domain.Region][]string{
			domain.RegionEMEA:     {"EMEA Issues", "EMEA Dispatched", "Future Work"},
			domain.RegionAPAC:     {"APAC Issues", "APAC Dispatched"},
			domain.RegionAmericas: {"CSE Dispatched", "3rd Party Issues", "Customer Managed", "EM3 Issues"},
		},
		BaseTime: map[domain.CasePriority]LogNormalParams{
			domain.CasePriorityCritical:      {Mu: 2.5, Sigma: 0.8},
			domain.CasePriorityMajor:         {Mu: 3.0, Sigma: 0.7},
			domain.CasePriorityMinor:         {Mu: 2.0, Sigma: 0.6},
			domain.CasePriorityInformational: {Mu: 3.2, Sigma: 0.9},
		},
		RegionalMultiplier: map[domain.Region]float64{
			domain.RegionAPAC:     0.85,
			domain.RegionEMEA:     1.15,
			domain.RegionAmericas: 1.05,
		},
	}
}

// Validate checks that every list is non-empty, every weight vector is aligned
// and positive, and every conditional mapping covers its conditioning values.
func (t Tables) Validate() error {
	if err := checkWeights("regions", len(t.Regions), t.RegionWeights); err != nil {
		return err
	}
	if err := checkWeights("statuses", len(t.Statuses), t.StatusWeights); err != nil {
		return err
	}
	if err := checkWeights("priorities", len(t.Priorities), t.PriorityWeights); err != nil {
		return err
	}
	if err := checkWeights("screen_statuses", len(t.ScreenStatuses), t.ScreenStatusWeights); err != nil {
		return err
	}
	if err := checkWeights("types", len(t.Types), t.TypeWeights); err != nil {
		return err
	}
	for name, list := range map[string][]string{
		"categories":      t.Categories,
		"reported_issues": t.ReportedIssues,
		"resolutions":     t.Resolutions,
	} {
		if len(list) == 0 {
			return emptyList(name, "")
		}
	}

	for _, region := range t.Regions {
		if !region.IsValid() {
			return util.NewConfigurationError("unknown region", map[string]any{"region": string(region)})
		}
		for name, mapping := range map[string]map[domain.Region][]string{
			"sites":   t.Sites,
			"markets": t.Markets,
			"states":  t.States,
			"queues":  t.Queues,
		} {
			if len(mapping[region]) == 0 {
				return emptyList(name, string(region))
			}
		}
		multiplier, ok := t.RegionalMultiplier[region]
		if !ok || multiplier <= 0 || math.IsNaN(multiplier) {
			return util.NewConfigurationError("regional multiplier must be positive",
				map[string]any{"region": string(region)})
		}
	}

	for _, priority := range t.Priorities {
		if !priority.IsValid() {
			return util.NewConfigurationError("unknown priority", map[string]any{"priority": string(priority)})
		}
		if len(t.Severities[priority]) == 0 {
			return emptyList("severities", string(priority))
		}
		params, ok := t.BaseTime[priority]
		if !ok || !(params.Sigma > 0) || math.IsNaN(params.Mu) || math.IsInf(params.Mu, 0) {
			return util.NewConfigurationError("base time distribution needs a finite location and positive scale",
				map[string]any{"priority": string(priority)})
		}
	}
	return nil
}

func checkWeights(name string, labels int, weights []float64) error {
	if labels == 0 {
		return emptyList(name, "")
	}
	if len(weights) != labels {
		return util.NewConfigurationError("weights not aligned with labels",
			map[string]any{"table": name, "labels": labels, "weights": len(weights)})
	}
	total := 0.0
	for _, w := range weights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return util.NewConfigurationError("weights must be finite and non-negative",
				map[string]any{"table": name})
		}
		total += w
	}
	if total <= 0 {
		return util.NewConfigurationError("weights must not sum to zero", map[string]any{"table": name})
	}
	return nil
}

func emptyList(name, key string) error {
	details := map[string]any{"table": name}
	if key != "" {
		details["key"] = key
	}
	return util.NewConfigurationError("empty candidate list", details)
}
