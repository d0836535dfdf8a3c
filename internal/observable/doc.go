// Package observable classifies scalar values into OCSF observable types.
//
// Detection runs in two stages. First an ordered list of structural
// patterns (IP addresses, MAC, email, URL, user agent, hex digests, file
// paths, registry keys, subnets) is tried; the first match wins. Values
// that only look like a hostname are ambiguous (a bare "admin" is also a
// hostname syntactically), so they are classified only when the field name
// confirms it, or when the value contains a dot.
package observable
