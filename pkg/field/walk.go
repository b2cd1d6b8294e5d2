package field

// Walk applies fn to every field in the tree, depth first, parents before
// children. fn receives a copy and returns the field to keep; nested
// sub_fields and layouts of the returned field are walked afterwards. The
// input slice is not modified.
func Walk(fields []Field, fn func(Field) Field) []Field {
	if fields == nil {
		return nil
	}
	out := make([]Field, 0, len(fields))
	for _, f := range fields {
		current := fn(f.Clone())
		if current == nil {
			continue
		}
		if _, ok := current[AttrSubFields]; ok {
			if subFields := current.SubFields(); subFields != nil {
				current[AttrSubFields] = Walk(subFields, fn)
			}
		}
		if _, ok := current[AttrLayouts]; ok {
			if layouts := current.Layouts(); layouts != nil {
				walked := make([]Layout, 0, len(layouts))
				for _, layout := range layouts {
					layout = Layout(cloneMap(layout))
					if subFields := layout.SubFields(); subFields != nil {
						layout[AttrSubFields] = Walk(subFields, fn)
					}
					walked = append(walked, layout)
				}
				current[AttrLayouts] = walked
			}
		}
		out = append(out, current)
	}
	return out
}

// Keys returns the keys of every field in the tree in walk order.
func Keys(fields []Field) []string {
	var keys []string
	Walk(fields, func(f Field) Field {
		keys = append(keys, f.Key())
		return f
	})
	return keys
}
