package mapping

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML accepts either a bare source path or a full mapping:
//
//	user.name: username
//	status_id:
//	  source: result
//	  enum: {ok: "1", failed: "2"}
//	class_uid:
//	  static: 3002
func (u *UserMapping) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var src string

		if err := node.Decode(&src); err != nil {
			return err
		}

		*u = UserMapping{Source: src}

		return nil

	case yaml.MappingNode:
		type plain UserMapping

		var p plain

		if err := node.Decode(&p); err != nil {
			return err
		}

		*u = UserMapping(p)

		return nil

	default:
		return fmt.Errorf("expected source path or mapping, got %v", node.Kind)
	}
}

// MarshalYAML writes plain source bindings in the shorthand form.
func (u UserMapping) MarshalYAML() (any, error) {
	if u.Source != "" && u.Static == nil && len(u.EnumMapping) == 0 && !u.overridesObservable() {
		return u.Source, nil
	}

	type plain UserMapping

	return plain(u), nil
}
