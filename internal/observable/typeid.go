package observable

import "ocsf-mapper/internal/common"

//go:generate go tool stringer -type=TypeID -linecomment -output=typeid_string.go

// TypeID is the OCSF observable type_id. The numbering is part of the wire
// format and must not change.
type TypeID int

const (
	Unknown TypeID = iota // Unknown
	Hostname              // Hostname
	IPAddress             // IP Address
	MACAddress            // MAC Address
	UserName              // User Name
	EmailAddress          // Email Address
	URLString             // URL String
	FileName              // File Name
	Hash                  // Hash
	ProcessName           // Process Name
	ResourceUID           // Resource UID
	Port                  // Port
	Subnet                // Subnet
	CommandLine           // Command Line
	Country               // Country
	ProcessID             // Process ID
	HTTPUserAgent         // HTTP User-Agent
	CWEUID                // CWE Object: uid
	CVEUID                // CVE Object: uid
	UserCredentialID      // User Credential ID
	Endpoint              // Endpoint
	User                  // User
	Email                 // Email
	URL                   // Uniform Resource Locator
	File                  // File
	Process               // Process
	GeoLocation           // Geo Location
	Container             // Container
	RegistryKey           // Registry Key
	RegistryValue         // Registry Value
	Fingerprint           // Fingerprint
	UserUID               // User Object: uid
	GroupName             // Group Object: name
	GroupUID              // Group Object: uid
	AccountName           // Account Object: name
	AccountUID            // Account Object: uid
	ScriptContent         // Script Content
	SerialNumber          // Serial Number
	ResourceName          // Resource Details Object: name
	ProcessEntityUID      // Process Entity Object: uid
	EmailSubject          // Email Object: subject
	EmailUID              // Email Object: uid
	MessageUID            // Message UID
	RegistryValueName     // Registry Value Object: name
	AdvisoryUID           // Advisory Object: uid
	FilePath              // File Path
	RegistryKeyPath       // Registry Key Path
	DeviceUID             // Device Object: uid
	NetworkEndpointUID    // Network Endpoint Object: uid

	Other TypeID = 99 // Other
)

// IsObjectType reports whether the type represents a whole OCSF object
// (Endpoint through Fingerprint) rather than a scalar. Observable records
// for object types carry no value.
func (t TypeID) IsObjectType() bool {
	return common.IsInRange(Endpoint, t, Fingerprint)
}

// IsValid reports whether t is a defined type id.
func (t TypeID) IsValid() bool {
	return common.IsInRange(Unknown, t, NetworkEndpointUID) || t == Other
}

// Ptr returns a pointer to t, for optional type id fields.
func (t TypeID) Ptr() *TypeID {
	return &t
}
