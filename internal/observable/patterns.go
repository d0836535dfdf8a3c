package observable

import "regexp"

// Pattern is one structural value pattern.
type Pattern struct {
	TypeID TypeID
	Name   string
	Regex  *regexp.Regexp
}

var patterns = []Pattern{
	{IPAddress, "IP Address", regexp.MustCompile(
		`^(?:(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.){3}(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)$`)},
	{IPAddress, "IPv6 Address", regexp.MustCompile(
		`^(([0-9a-fA-F]{1,4}:){7}[0-9a-fA-F]{1,4}|([0-9a-fA-F]{1,4}:){1,7}:|([0-9a-fA-F]{1,4}:){1,6}:[0-9a-fA-F]{1,4}|` +
			`([0-9a-fA-F]{1,4}:){1,5}(:[0-9a-fA-F]{1,4}){1,2}|([0-9a-fA-F]{1,4}:){1,4}(:[0-9a-fA-F]{1,4}){1,3}|` +
			`([0-9a-fA-F]{1,4}:){1,3}(:[0-9a-fA-F]{1,4}){1,4}|([0-9a-fA-F]{1,4}:){1,2}(:[0-9a-fA-F]{1,4}){1,5}|` +
			`[0-9a-fA-F]{1,4}:((:[0-9a-fA-F]{1,4}){1,6})|:((:[0-9a-fA-F]{1,4}){1,7}|:)|` +
			`fe80:(:[0-9a-fA-F]{0,4}){0,4}%[0-9a-zA-Z]+|` +
			`::(ffff(:0{1,4})?:)?((25[0-5]|(2[0-4]|1?[0-9])?[0-9])\.){3}(25[0-5]|(2[0-4]|1?[0-9])?[0-9])|` +
			`([0-9a-fA-F]{1,4}:){1,4}:((25[0-5]|(2[0-4]|1?[0-9])?[0-9])\.){3}(25[0-5]|(2[0-4]|1?[0-9])?[0-9]))$`)},
	{Subnet, "Subnet", regexp.MustCompile(
		`^(?:(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.){3}(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)/(?:[0-9]|[12][0-9]|3[0-2])$`)},
	{MACAddress, "MAC Address", regexp.MustCompile(`^([0-9A-Fa-f]{2}[:-]){5}[0-9A-Fa-f]{2}$`)},
	{EmailAddress, "Email Address", regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)},
	{URLString, "URL", regexp.MustCompile(
		`^https?://(?:www\.)?[-a-zA-Z0-9@:%._+~#=]{1,256}\.[a-zA-Z0-9()]{1,6}\b[-a-zA-Z0-9()@:%_+.~#?&/=]*$`)},
	{HTTPUserAgent, "User Agent", regexp.MustCompile(`^Mozilla/[0-9]\.[0-9].+$`)},
	{Hash, "MD5 Hash", regexp.MustCompile(`^[a-fA-F0-9]{32}$`)},
	{Hash, "SHA-1 Hash", regexp.MustCompile(`^[a-fA-F0-9]{40}$`)},
	{Hash, "SHA-256 Hash", regexp.MustCompile(`^[a-fA-F0-9]{64}$`)},
	{Hash, "SHA-512 Hash", regexp.MustCompile(`^[a-fA-F0-9]{128}$`)},
	{FilePath, "Unix Path", regexp.MustCompile(`^/([^/\x00]+/)+[^/\x00]*$`)},
	{FilePath, "Windows Path", regexp.MustCompile(`^[a-zA-Z]:\\(?:[^\\/:*?"<>|]+\\)*[^\\/:*?"<>|]*$`)},
	{RegistryKeyPath, "Registry Key", regexp.MustCompile(
		`(?i)^(HKEY_LOCAL_MACHINE|HKLM|HKEY_CURRENT_USER|HKCU|HKEY_CLASSES_ROOT|HKCR|HKEY_USERS|HKU|HKEY_CURRENT_CONFIG|HKCC)\\.+`)},
}

// hostnamePattern is an RFC 1123 label sequence. It matches most bare words
// too, which is why it is not part of patterns.
var hostnamePattern = regexp.MustCompile(
	`^(([a-zA-Z0-9]|[a-zA-Z0-9][a-zA-Z0-9-]*[a-zA-Z0-9])\.)*([A-Za-z0-9]|[A-Za-z0-9][A-Za-z0-9-]*[A-Za-z0-9])$`)

// Patterns returns the structural patterns in evaluation order, followed by
// the hostname pattern.
func Patterns() []Pattern {
	out := make([]Pattern, 0, len(patterns)+1)
	out = append(out, patterns...)

	return append(out, Pattern{Hostname, "Hostname", hostnamePattern})
}
