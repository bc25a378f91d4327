// Code generated by musgen-go. DO NOT EDIT.

package core

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

var (
	slicePiUwEXdV1mbAZW2MCOxWQgΞΞ = ord.NewSliceSer[string](ord.String)
	slicemH3uAVR9DdWlkelfzPVhzgΞΞ = ord.NewSliceSer[float32](varint.Float32)
)

var IDMUS = iDMUS{}

type iDMUS struct{}

func (s iDMUS) Marshal(v ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (s iDMUS) Unmarshal(bs []byte) (v ID, n int, err error) {
	tmp, n, err := varint.Uint64.Unmarshal(bs)
	if err != nil {
		return
	}
	v = ID(tmp)
	return
}

func (s iDMUS) Size(v ID) (size int) {
	return varint.Uint64.Size(uint64(v))
}

func (s iDMUS) Skip(bs []byte) (n int, err error) {
	return varint.Uint64.Skip(bs)
}

var IdentityMUS = identityMUS{}

type identityMUS struct{}

func (s identityMUS) Marshal(v Identity, bs []byte) (n int) {
	return ord.String.Marshal(string(v), bs)
}

func (s identityMUS) Unmarshal(bs []byte) (v Identity, n int, err error) {
	tmp, n, err := ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	v = Identity(tmp)
	return
}

func (s identityMUS) Size(v Identity) (size int) {
	return ord.String.Size(string(v))
}

func (s identityMUS) Skip(bs []byte) (n int, err error) {
	return ord.String.Skip(bs)
}

var ViewMUS = viewMUS{}

type viewMUS struct{}

func (s viewMUS) Marshal(v View, bs []byte) (n int) {
	return ord.String.Marshal(string(v), bs)
}

func (s viewMUS) Unmarshal(bs []byte) (v View, n int, err error) {
	tmp, n, err := ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	v = View(tmp)
	return
}

func (s viewMUS) Size(v View) (size int) {
	return ord.String.Size(string(v))
}

func (s viewMUS) Skip(bs []byte) (n int, err error) {
	return ord.String.Skip(bs)
}

var ProfileMUS = profileMUS{}

type profileMUS struct{}

func (s profileMUS) Marshal(v Profile, bs []byte) (n int) {
	n = ord.String.Marshal(v.Name, bs)
	n += ord.String.Marshal(v.Expertise, bs[n:])
	n += ord.String.Marshal(v.Business, bs[n:])
	n += slicePiUwEXdV1mbAZW2MCOxWQgΞΞ.Marshal(v.Hobbies, bs[n:])
	n += ord.String.Marshal(v.FamilyStatus, bs[n:])
	n += slicePiUwEXdV1mbAZW2MCOxWQgΞΞ.Marshal(v.Contacts, bs[n:])
	n += ord.String.Marshal(v.Source, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.InsertedAt, bs[n:])
	return n + raw.TimeUnixMicro.Marshal(v.UpdatedAt, bs[n:])
}

func (s profileMUS) Unmarshal(bs []byte) (v Profile, n int, err error) {
	v.Name, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Expertise, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Business, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Hobbies, n1, err = slicePiUwEXdV1mbAZW2MCOxWQgΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.FamilyStatus, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Contacts, n1, err = slicePiUwEXdV1mbAZW2MCOxWQgΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Source, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.InsertedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.UpdatedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	return
}

func (s profileMUS) Size(v Profile) (size int) {
	size = ord.String.Size(v.Name)
	size += ord.String.Size(v.Expertise)
	size += ord.String.Size(v.Business)
	size += slicePiUwEXdV1mbAZW2MCOxWQgΞΞ.Size(v.Hobbies)
	size += ord.String.Size(v.FamilyStatus)
	size += slicePiUwEXdV1mbAZW2MCOxWQgΞΞ.Size(v.Contacts)
	size += ord.String.Size(v.Source)
	size += raw.TimeUnixMicro.Size(v.InsertedAt)
	return size + raw.TimeUnixMicro.Size(v.UpdatedAt)
}

func (s profileMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = slicePiUwEXdV1mbAZW2MCOxWQgΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = slicePiUwEXdV1mbAZW2MCOxWQgΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	return
}

var VectorEntryMUS = vectorEntryMUS{}

type vectorEntryMUS struct{}

func (s vectorEntryMUS) Marshal(v VectorEntry, bs []byte) (n int) {
	n = IdentityMUS.Marshal(v.Identity, bs)
	n += ViewMUS.Marshal(v.View, bs[n:])
	n += ord.String.Marshal(v.Name, bs[n:])
	n += ord.String.Marshal(v.Source, bs[n:])
	n += slicemH3uAVR9DdWlkelfzPVhzgΞΞ.Marshal(v.Vector, bs[n:])
	return n + raw.TimeUnixMicro.Marshal(v.UpdatedAt, bs[n:])
}

func (s vectorEntryMUS) Unmarshal(bs []byte) (v VectorEntry, n int, err error) {
	v.Identity, n, err = IdentityMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.View, n1, err = ViewMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Name, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Source, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Vector, n1, err = slicemH3uAVR9DdWlkelfzPVhzgΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.UpdatedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	return
}

func (s vectorEntryMUS) Size(v VectorEntry) (size int) {
	size = IdentityMUS.Size(v.Identity)
	size += ViewMUS.Size(v.View)
	size += ord.String.Size(v.Name)
	size += ord.String.Size(v.Source)
	size += slicemH3uAVR9DdWlkelfzPVhzgΞΞ.Size(v.Vector)
	return size + raw.TimeUnixMicro.Size(v.UpdatedAt)
}

func (s vectorEntryMUS) Skip(bs []byte) (n int, err error) {
	n, err = IdentityMUS.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ViewMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = slicemH3uAVR9DdWlkelfzPVhzgΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	return
}
