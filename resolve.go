package xjson

// resolveType resolves a type name from input text to a descriptor.
//
// Lookup order is load-bearing: a non-empty alias registry is consulted
// first, and only when it misses does the opt-in qualified path run.
// With QualifiedTypes off (the default) an unknown name is fatal, which
// keeps untrusted input from naming arbitrary types for construction.
func resolveType(name string, o *Options) (TypeDescriptor, error) {
	if o.Aliases.Len() > 0 {
		if d, ok := o.Aliases.Lookup(name); ok {
			return d, nil
		}
	}

	if o.QualifiedTypes {
		if rt, ok := lookupQualified(name); ok {
			return Describe(rt), nil
		}
		err := newResolveError(name, "not found among aliases or qualified types")
		o.logf(SeverityError, "%v", err)
		emitResolveMiss(name, true)
		return TypeDescriptor{}, err
	}

	err := newResolveError(name, "no alias registered and qualified lookup is disabled")
	o.logf(SeverityError, "%v", err)
	emitResolveMiss(name, false)
	return TypeDescriptor{}, err
}
