package domain

import "errors"

var (
	ErrInvalidID            = errors.New("invalid id")
	ErrEventNotFound        = errors.New("event not found")
	ErrEventTitleRequired   = errors.New("event title required")
	ErrNoValidZones         = errors.New("event must keep at least one valid zone")
	ErrInvalidZoneFields    = errors.New("please ensure all zones have valid price and capacity values")
	ErrVenueNotFound        = errors.New("venue not found")
	ErrVenueNameRequired    = errors.New("venue name required")
	ErrInvalidVenueKind     = errors.New("invalid venue kind")
	ErrBookingNotFound      = errors.New("booking not found")
	ErrInvalidStatus        = errors.New("invalid status")
	ErrProfileNotFound      = errors.New("profile not found")
	ErrFeedNotFound         = errors.New("feed not found")
	ErrFeedTitleRequired    = errors.New("feed title required")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrCategoryNameRequired = errors.New("category name required")
	ErrCategoryNameTaken    = errors.New("category name already in use")
	ErrPlanNotFound         = errors.New("subscription plan not found")
	ErrPlanNameRequired     = errors.New("plan name required")
	ErrInvalidPrice         = errors.New("invalid price")
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrRequestNotFound      = errors.New("concierge request not found")
	ErrTierNotFound         = errors.New("membership tier not found")
	ErrTierNameRequired     = errors.New("tier name required")
	ErrInvalidThreshold     = errors.New("invalid threshold")
	ErrInvalidPointsDelta   = errors.New("points delta must be non-zero")
	ErrPodcastNotFound      = errors.New("podcast not found")
	ErrPodcastTitleRequired = errors.New("podcast title required")
)
