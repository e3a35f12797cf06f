package compliance

// layerNames maps the well-known security layer numbers to their names.
// Used as a fallback when a checklist row leaves the layer name blank.
var layerNames = map[string]string{
	"1":  "Governance & Policy",
	"2":  "Risk & Threat Modeling",
	"3":  "Secure SDLC & Supply Chain",
	"4":  "Identity & Access (IAM)",
	"5":  "Secrets Management",
	"6":  "Key & Cryptography",
	"7":  "Network Segmentation & Transport",
	"8":  "Perimeter & API Gateway",
	"9":  "Host/Endpoint Hardening",
	"10": "Containers & Orchestration",
	"11": "Cloud/IaaS Security",
	"12": "Data Security",
	"13": "Application Security",
	"14": "Protocol/API Security",
	"15": "Messaging & Event Security",
	"16": "Database Security",
	"17": "Wallet/Custody & Key Ops (Web3)",
	"18": "Oracle & Market Data Integrity (Web3)",
	"19": "Privacy & Compliance",
	"20": "Observability & Telemetry Security",
	"21": "Detection & Response",
	"22": "Resilience, Availability & Chaos",
}

// DefaultLayerName returns the well-known name for a layer number, or
// "Unknown Layer" when the number is not recognized.
func DefaultLayerName(number string) string {
	if name, ok := layerNames[number]; ok {
		return name
	}
	return "Unknown Layer"
}

// LayerDisplayName prefers the name observed in the checklist and falls
// back to the well-known table.
func LayerDisplayName(stats LayerStats) string {
	if stats.LayerName != "" {
		return stats.LayerName
	}
	return DefaultLayerName(stats.LayerNumber)
}
