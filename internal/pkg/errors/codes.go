package errors

import "net/http"

const (
	CodeValidation       = "VALIDATION_ERROR"
	CodeNotFound         = "NOT_FOUND"
	CodeConflict         = "CONFLICT"
	CodeStoreUnavailable = "STORE_UNAVAILABLE"
	CodeAggregateStale   = "AGGREGATE_STALE"
	CodeInternal         = "INTERNAL_SERVER_ERROR"
)

var (
	ErrValidation = New(
		CodeValidation,
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrNotFound = New(
		CodeNotFound,
		"Resource not found",
		http.StatusNotFound,
	)

	ErrConflict = New(
		CodeConflict,
		"Request conflicts with current state",
		http.StatusConflict,
	)

	ErrStoreUnavailable = New(
		CodeStoreUnavailable,
		"Storage temporarily unavailable, retry later",
		http.StatusServiceUnavailable,
	)

	// ErrAggregateStale means the write itself succeeded but the derived
	// spot ratings could not be refreshed.
	ErrAggregateStale = New(
		CodeAggregateStale,
		"Review saved, spot ratings not yet refreshed",
		http.StatusAccepted,
	)

	ErrInternalServer = New(
		CodeInternal,
		"Internal server error",
		http.StatusInternalServerError,
	)
)

var (
	ErrInvalidCoordinates = ErrValidation.WithMessage("Latitude must be in [-90,90] and longitude in [-180,180]")
	ErrIncompletePoint    = ErrValidation.WithMessage("Latitude and longitude must be provided together")
	ErrInvalidRadius      = ErrValidation.WithMessage("Radius must be greater than 0 and at most 100 km")
	ErrInvalidLimit       = ErrValidation.WithMessage("Limit must be between 1 and 100")
	ErrInvalidOffset      = ErrValidation.WithMessage("Offset must not be negative")
	ErrInvalidMinRating   = ErrValidation.WithMessage("Minimum rating must be between 0 and 5")
	ErrInvalidRating      = ErrValidation.WithMessage("Ratings must be integers between 1 and 5")
	ErrInvalidMode        = ErrValidation.WithMessage("Unknown transport mode")
	ErrInvalidSpotType    = ErrValidation.WithMessage("Unknown spot type")
	ErrInvalidSafety      = ErrValidation.WithMessage("Unknown safety priority")
	ErrEmptyTravelModes   = ErrValidation.WithMessage("Travel modes must not be empty")
	ErrSelfVote           = ErrValidation.WithMessage("Authors cannot vote on their own review")
	ErrSelfVouch          = ErrValidation.WithMessage("Users cannot vouch for themselves")
	ErrMissingUser        = ErrValidation.WithMessage("User identity is required")

	ErrSpotNotFound    = ErrNotFound.WithMessage("Spot not found")
	ErrProfileNotFound = ErrNotFound.WithMessage("Profile not found")
	ErrReviewNotFound  = ErrNotFound.WithMessage("Review not found")

	ErrDuplicateReview    = ErrConflict.WithMessage("User has already reviewed this spot")
	ErrPrimaryModeInvalid = ErrConflict.WithMessage("Primary mode must be one of the travel modes")
	ErrAlreadyVoted       = ErrConflict.WithMessage("User has already voted on this review")
	ErrAlreadyVouched     = ErrConflict.WithMessage("User has already vouched for this profile")
	ErrProfileExists      = ErrConflict.WithMessage("Profile already exists")
)
