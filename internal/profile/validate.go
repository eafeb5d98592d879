package profile

// ValidateProfile checks the structure of a raw profile mapping and returns every
// problem found. It does not stop at the first problem.
func ValidateProfile(raw any) (bool, []string) {
	var errs []string

	if raw == nil {
		return false, []string{"Profile is empty or None"}
	}
	profile, ok := raw.(map[string]any)
	if !ok {
		return false, []string{"Profile must be a dictionary"}
	}
	if len(profile) == 0 {
		return false, []string{"Profile is empty or None"}
	}

	if meta, present := profile["profile"]; !present {
		errs = append(errs, "Missing 'profile' section")
	} else if metaMap, ok := meta.(map[string]any); !ok {
		errs = append(errs, "'profile' section must be a dictionary")
	} else if _, present := metaMap["name"]; !present {
		errs = append(errs, "Missing 'profile.name'")
	}

	if filters, present := profile["filters"]; present {
		filtersMap, ok := filters.(map[string]any)
		if !ok {
			errs = append(errs, "'filters' section must be a dictionary")
		} else {
			if tags, present := filtersMap["include_tags"]; present {
				switch tags.(type) {
				case []any, []string:
				default:
					errs = append(errs, "'filters.include_tags' must be a list")
				}
			}
			if max, present := filtersMap["max_bullets_per_job"]; present && max != nil && !isInt(max) {
				errs = append(errs, "'filters.max_bullets_per_job' must be an integer or None")
			}
		}
	}

	return len(errs) == 0, errs
}
