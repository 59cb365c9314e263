package eval

import "fmt"

// BindArguments implements the argument-binding protocol: it partitions
// args into named and positional, matches each normal Parameter against a
// same-named argument or the next positional argument or its default, then
// routes any left-over positional/named arguments to the PositionalRest/
// Named collector parameters (if declared), and declares every bound name
// into env. It is grounded directly on closure.rs's
// push_arguments_to_env.
func BindArguments(env *Scope, params []Parameter, args []CallArgument) error {
	named := map[string]Value{}
	var positional []Value
	for _, a := range args {
		if a.Name != "" {
			named[a.Name] = a.Value
		} else {
			positional = append(positional, a.Value)
		}
	}

	var namedRest, positionalRest *Parameter
	for i := range params {
		p := &params[i]
		if p.Named {
			namedRest = p
			continue
		}
		if p.PositionalRest {
			positionalRest = p
			continue
		}

		var v Value
		switch {
		case func() bool { _, ok := named[p.Name]; return ok }():
			v = named[p.Name]
			delete(named, p.Name)
		case len(positional) > 0:
			v = positional[0]
			positional = positional[1:]
		case p.Default != nil:
			v = *p.Default
		default:
			return fmt.Errorf("%w: missing variable %q", ErrArgument, p.Name)
		}

		if p.Type != nil && !p.Type.Is(v.Type()) {
			return fmt.Errorf("%w: wrong parameter type for %q: expected %s, got %s",
				ErrArgument, p.Name, p.Type, v.Type())
		}
		if err := env.Declare(p.Name, v); err != nil {
			return err
		}
	}

	if positionalRest != nil {
		list := NewListData(TAny, positional)
		if err := env.Declare(positionalRest.Name, NewList(list)); err != nil {
			return err
		}
	} else if len(positional) > 0 {
		return fmt.Errorf("%w: no target for unnamed arguments", ErrArgument)
	}

	if namedRest != nil {
		dict := NewDictData(TString, TAny)
		for k, v := range named {
			if err := dict.Set(NewString(k), v); err != nil {
				return err
			}
		}
		if err := env.Declare(namedRest.Name, NewDict(dict)); err != nil {
			return err
		}
	} else if len(named) > 0 {
		return fmt.Errorf("%w: no target for extra named arguments", ErrArgument)
	}

	return nil
}
