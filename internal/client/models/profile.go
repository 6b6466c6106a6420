package models

type Profile struct {
	DisplayName string   `json:"displayName"`
	Slug        string   `json:"slug,omitempty"`
	Type        string   `json:"type,omitempty"`
	Username    string   `json:"username,omitempty"`
	Bio         string   `json:"bio,omitempty"`
	Links       []string `json:"links,omitempty"`
	AvatarURL   string   `json:"avatarUrl,omitempty"`
	CoverURL    string   `json:"coverUrl,omitempty"`
}

// ProfileResponse covers every shape /profiles/me has returned: a single
// profile, the extended variant, or a list keyed by profileId.
type ProfileResponse struct {
	UserID     int64           `json:"userId,omitempty"`
	ProfileID  int64           `json:"profileId,omitempty"`
	Profile    *Profile        `json:"profile,omitempty"`
	ProfileExt *Profile        `json:"profileExt,omitempty"`
	Profiles   []ProfileRecord `json:"profiles,omitempty"`
}

type ProfileRecord struct {
	ID int64 `json:"id"`
	Profile
}

// Resolve picks the active profile: profile, then profileExt, then the list
// entry matching profileId, then the first list entry.
func (r ProfileResponse) Resolve() *Profile {
	if r.Profile != nil {
		return r.Profile
	}
	if r.ProfileExt != nil {
		return r.ProfileExt
	}
	for i := range r.Profiles {
		if r.ProfileID != 0 && r.Profiles[i].ID == r.ProfileID {
			return &r.Profiles[i].Profile
		}
	}
	if len(r.Profiles) > 0 {
		return &r.Profiles[0].Profile
	}
	return nil
}
