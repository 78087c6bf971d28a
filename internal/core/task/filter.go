package task

// Filter selects tasks from a snapshot.
type Filter func(Task) bool

// Select returns the tasks matching every filter, preserving order.
func Select(tasks []Task, filters ...Filter) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if matchAll(t, filters) {
			out = append(out, t)
		}
	}
	return out
}

func matchAll(t Task, filters []Filter) bool {
	for _, f := range filters {
		if f != nil && !f(t) {
			return false
		}
	}
	return true
}

// WithStatus matches any of the given statuses.
func WithStatus(statuses ...Status) Filter {
	return func(t Task) bool {
		for _, s := range statuses {
			if t.Status == s {
				return true
			}
		}
		return false
	}
}

// WithSource matches tasks created by src.
func WithSource(src Source) Filter {
	return func(t Task) bool { return t.Source == src }
}

// WithApplication matches system tasks bound to any of the named applications.
func WithApplication(apps ...string) Filter {
	set := make(map[string]struct{}, len(apps))
	for _, a := range apps {
		set[a] = struct{}{}
	}
	return func(t Task) bool {
		if t.Application == "" {
			return false
		}
		_, ok := set[t.Application]
		return ok
	}
}
