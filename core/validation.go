// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import "fmt"

// ValidateProfile validates a Profile according to domain rules.
//
// Validation rules:
//   - Name must not be empty (the identity is derived from it)
//
// NOT validated (optional free-text facets):
//   - Expertise, Business, Hobbies, FamilyStatus, Contacts, Source
//   - InsertedAt/UpdatedAt (populated by the repository)
func ValidateProfile(profile *Profile) error {
	if profile == nil {
		return fmt.Errorf("%w: profile is nil", ErrInvalidProfile)
	}

	if profile.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidProfile, ErrEmptyName)
	}

	return nil
}

// ValidateView validates that a View has a known value.
func ValidateView(view View) error {
	if !view.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownView, string(view))
	}
	return nil
}
