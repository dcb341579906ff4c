package usecases

type VersionUsecase struct {
	ApiVersion string
}

func (usecase VersionUsecase) GetApiVersion() string {
	return usecase.ApiVersion
}
