// Package session stores a mapping session as YAML: the sample payload,
// the target class, user bindings and conditional branches. Building a
// session parses the sample into fields and resolves a ParserConfig.
//
//	version: "1"
//	id: 1b4e28ba-2fa1-41d2-883f-0016d3cca427
//	name: sshd logins
//	class: authentication
//	sample: |
//	  {"user": "jdoe", "ip": "10.0.0.1", "result": "ok", "type": "login"}
//	mappings:
//	  user.name: user
//	  src_endpoint.ip: ip
//	  status_id:
//	    source: result
//	    enum: {ok: "1", failed: "2"}
//	conditionals:
//	  - field: type
//	    value: connect
//	    class: network_activity
//	    mappings:
//	      src_endpoint.ip: ip
package session
