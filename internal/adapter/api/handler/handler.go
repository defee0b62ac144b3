package handler

import (
	"neighbo/internal/usecase"
)

var (
	restaurantHandler    *RestaurantHandler
	certificationHandler *CertificationHandler
	reportHandler        *ReportHandler
	claimHandler         *ClaimHandler
	userHandler          *UserHandler
	valueHandler         *ValueHandler
)

func Setup(
	restaurantUseCase *usecase.RestaurantUseCase,
	certificationUseCase *usecase.CertificationUseCase,
	reportUseCase *usecase.ReportUseCase,
	claimUseCase *usecase.ClaimUseCase,
	userUseCase *usecase.UserUseCase,
	valueUseCase *usecase.ValueUseCase,
) {
	restaurantHandler = NewRestaurantHandler(restaurantUseCase)
	certificationHandler = NewCertificationHandler(certificationUseCase)
	reportHandler = NewReportHandler(reportUseCase)
	claimHandler = NewClaimHandler(claimUseCase)
	userHandler = NewUserHandler(userUseCase)
	valueHandler = NewValueHandler(valueUseCase)
}

func GetRestaurantHandler() *RestaurantHandler {
	return restaurantHandler
}

func GetCertificationHandler() *CertificationHandler {
	return certificationHandler
}

func GetReportHandler() *ReportHandler {
	return reportHandler
}

func GetClaimHandler() *ClaimHandler {
	return claimHandler
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetValueHandler() *ValueHandler {
	return valueHandler
}
