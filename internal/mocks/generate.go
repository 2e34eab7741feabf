package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/dataset --output domain/dataset --outpkg datasetmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name PlayerHistorySource --dir ../usecase --output usecase --outpkg usecasemock --filename player_history_source_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Geocoder --dir ../usecase --output usecase --outpkg usecasemock --filename geocoder_mock.go
