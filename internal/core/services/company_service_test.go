package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/SscSPs/receivables_app/internal/apperrors"
	"github.com/SscSPs/receivables_app/internal/core/domain"
	"github.com/SscSPs/receivables_app/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCompanyService_AuthorizeCaller(t *testing.T) {
	stored := &domain.User{UserID: "user-1", CompanyID: testCompanyID, Name: "Ayşe Kaya", Role: domain.RoleSalesRep}

	tests := []struct {
		name    string
		caller  domain.Caller
		roles   []domain.UserRole
		user    *domain.User
		findErr error
		wantErr error
	}{
		{
			name:   "member without role requirement",
			caller: domain.Caller{UserID: "user-1", CompanyID: testCompanyID, Role: domain.RoleSalesRep},
			user:   stored,
		},
		{
			name:    "stored role wins over token claim",
			caller:  domain.Caller{UserID: "user-1", CompanyID: testCompanyID, Role: domain.RoleCompanyAdmin},
			roles:   domain.BulkWriteRoles,
			user:    stored,
			wantErr: apperrors.ErrForbidden,
		},
		{
			name:    "removed user",
			caller:  domain.Caller{UserID: "user-1", CompanyID: testCompanyID, Role: domain.RoleAccounting},
			findErr: apperrors.ErrNotFound,
			wantErr: apperrors.ErrForbidden,
		},
		{
			name:    "user moved to another company",
			caller:  domain.Caller{UserID: "user-1", CompanyID: testCompanyID, Role: domain.RoleSalesRep},
			user:    &domain.User{UserID: "user-1", CompanyID: "company-2", Role: domain.RoleSalesRep},
			wantErr: apperrors.ErrNotFound,
		},
		{
			name:    "claims for another company",
			caller:  domain.Caller{UserID: "user-1", CompanyID: "company-2", Role: domain.RoleSalesRep},
			wantErr: apperrors.ErrNotFound,
		},
		{
			name:    "anonymous caller",
			caller:  domain.Caller{CompanyID: testCompanyID},
			wantErr: apperrors.ErrUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(MockUserRepository)
			if tt.user != nil || tt.findErr != nil {
				var user any
				if tt.user != nil {
					user = tt.user
				}
				userRepo.On("FindUserByID", mock.Anything, tt.caller.UserID).Return(user, tt.findErr).Once()
			}
			svc := services.NewCompanyService(new(MockCompanyRepository), userRepo)

			err := svc.AuthorizeCaller(context.Background(), tt.caller, testCompanyID, tt.roles...)

			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			userRepo.AssertExpectations(t)
		})
	}
}

func TestCompanyService_GetCompany(t *testing.T) {
	companyRepo := new(MockCompanyRepository)
	inactive := testCompany()
	inactive.CompanyID = "company-off"
	inactive.IsActive = false
	companyRepo.On("FindCompanyByID", mock.Anything, testCompanyID).Return(testCompany(), nil)
	companyRepo.On("FindCompanyByID", mock.Anything, "company-off").Return(inactive, nil)
	companyRepo.On("FindCompanyByID", mock.Anything, "company-broken").Return(nil, errors.New("timeout"))
	svc := services.NewCompanyService(companyRepo, new(MockUserRepository))

	company, err := svc.GetCompany(context.Background(), testCompanyID)
	require.NoError(t, err)
	assert.Equal(t, "TRY", company.BaseCurrency)

	_, err = svc.GetCompany(context.Background(), "company-off")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = svc.GetCompany(context.Background(), "company-broken")
	assert.EqualError(t, err, "timeout")
}

func TestCompanyService_ResolveCaller(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("FindUserByID", mock.Anything, "user-1").Return(&domain.User{
		UserID: "user-1", CompanyID: testCompanyID, Role: domain.RoleAccounting,
	}, nil)
	userRepo.On("FindUserByID", mock.Anything, "ghost").Return(nil, apperrors.ErrNotFound)
	svc := services.NewCompanyService(new(MockCompanyRepository), userRepo)

	caller, err := svc.ResolveCaller(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, domain.Caller{UserID: "user-1", CompanyID: testCompanyID, Role: domain.RoleAccounting}, caller)

	_, err = svc.ResolveCaller(context.Background(), "ghost")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}
