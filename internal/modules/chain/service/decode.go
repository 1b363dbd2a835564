package service

import (
	"fmt"

	"github.com/Goodnessmbakara/skillsverse/internal/entity"
	"github.com/Goodnessmbakara/skillsverse/internal/modules/chain/client"
)

func decodeProfile(obj client.Object) (*Profile, error) {
	p := &Profile{ID: obj.ID}
	var err error

	if p.Owner, err = client.DecodeOptionalAddress(obj.Field("owner")); err != nil {
		return nil, fmt.Errorf("profile %s owner: %w", obj.ID, err)
	}
	for field, dst := range map[string]*string{"name": &p.Name, "bio_url": &p.BioURL, "avatar_url": &p.AvatarURL} {
		if obj.Field(field) == nil {
			continue
		}
		if *dst, err = client.DecodeBytes(obj.Field(field)); err != nil {
			return nil, fmt.Errorf("profile %s %s: %w", obj.ID, field, err)
		}
	}
	if p.Skills, err = client.DecodeVecMap(obj.Field("skills")); err != nil {
		return nil, fmt.Errorf("profile %s skills: %w", obj.ID, err)
	}
	if p.Reputation, err = client.DecodeU64(obj.Field("reputation")); err != nil {
		return nil, fmt.Errorf("profile %s reputation: %w", obj.ID, err)
	}

	accountType, err := client.DecodeBytes(obj.Field("type"))
	if err != nil {
		return nil, fmt.Errorf("profile %s type: %w", obj.ID, err)
	}
	p.Type = entity.AccountType(accountType)
	if !p.Type.Valid() {
		return nil, fmt.Errorf("profile %s: unknown account type %q", obj.ID, accountType)
	}
	return p, nil
}

func decodeJob(obj client.Object) (*Job, error) {
	j := &Job{ID: obj.ID}
	var err error

	if j.Employer, err = client.DecodeOptionalAddress(obj.Field("employer")); err != nil {
		return nil, fmt.Errorf("job %s employer: %w", obj.ID, err)
	}
	if j.Title, err = client.DecodeBytes(obj.Field("title")); err != nil {
		return nil, fmt.Errorf("job %s title: %w", obj.ID, err)
	}
	if raw := obj.Field("description_url"); raw != nil {
		if j.DescriptionURL, err = client.DecodeBytes(raw); err != nil {
			return nil, fmt.Errorf("job %s description_url: %w", obj.ID, err)
		}
	}
	if j.Payment, err = client.DecodeU64(obj.Field("payment")); err != nil {
		return nil, fmt.Errorf("job %s payment: %w", obj.ID, err)
	}
	if j.Freelancer, err = client.DecodeOptionalAddress(obj.Field("freelancer")); err != nil {
		return nil, fmt.Errorf("job %s freelancer: %w", obj.ID, err)
	}
	if j.Completed, err = client.DecodeBool(obj.Field("completed")); err != nil {
		return nil, fmt.Errorf("job %s completed: %w", obj.ID, err)
	}
	return j, nil
}
