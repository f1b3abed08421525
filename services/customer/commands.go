package customer

import (
	"context"
	"fmt"

	"github.com/MarcGrol/foodorder/lib/myerrors"
	"github.com/MarcGrol/foodorder/lib/mylog"
)

func (s *service) getProfile(c context.Context, customerUID string) (Profile, error) {
	s.logger.Log(c, customerUID, mylog.SeverityInfo, "Fetch profile of customer %s", customerUID)

	profile, found, err := s.profileStore.Get(c, customerUID)
	if err != nil {
		return Profile{}, myerrors.NewInternalError(err)
	}
	if !found {
		return Profile{}, myerrors.NewNotFoundError(fmt.Errorf("profile of customer %s not found", customerUID))
	}

	return profile, nil
}

func (s *service) upsertProfile(c context.Context, profile Profile) (Profile, error) {
	if profile.UID == "" {
		return Profile{}, myerrors.NewInvalidInputErrorf("profile is missing a uid")
	}

	now := s.nower.Now()

	err := s.profileStore.RunInTransaction(c, func(c context.Context) error {
		existing, found, err := s.profileStore.Get(c, profile.UID)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if found {
			profile.CreatedAt = existing.CreatedAt
			profile.LastModified = &now
		} else {
			profile.CreatedAt = now
		}

		err = s.profileStore.Put(c, profile.UID, profile)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		return nil
	})
	if err != nil {
		return Profile{}, err
	}

	s.logger.Log(c, profile.UID, mylog.SeverityInfo, "Stored profile of customer %s", profile.UID)

	return profile, nil
}
