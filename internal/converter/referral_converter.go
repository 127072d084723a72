package converter

import (
	"his-backend/internal/delivery/dto"
	"his-backend/internal/domain/entity"
)

// ReferralToResponse converts a Referral entity to ReferralResponse DTO
func ReferralToResponse(referral *entity.Referral) *dto.ReferralResponse {
	if referral == nil {
		return nil
	}

	return &dto.ReferralResponse{
		ID:                 referral.ID,
		VisitID:            referral.VisitID,
		PatientID:          referral.PatientID,
		ReferringDoctorID:  referral.ReferringDoctorID,
		ReferredToFacility: referral.ReferredToFacility,
		Specialty:          referral.Specialty,
		Reason:             referral.Reason,
		Diagnosis:          referral.Diagnosis,
		Status:             string(referral.Status),
		Notes:              referral.Notes,
		CreatedAt:          referral.CreatedAt,
		UpdatedAt:          referral.UpdatedAt,
	}
}

// ReferralsToResponses converts a slice of Referral entities to slice of ReferralResponse DTOs
func ReferralsToResponses(referrals []entity.Referral) []dto.ReferralResponse {
	responses := make([]dto.ReferralResponse, len(referrals))
	for i := range referrals {
		responses[i] = *ReferralToResponse(&referrals[i])
	}
	return responses
}
