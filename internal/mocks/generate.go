package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name ScoreboardClient --dir ../domain/feed --output domain/feed --outpkg feedmock --filename scoreboard_client_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name FootballDataClient --dir ../domain/feed --output domain/feed --outpkg feedmock --filename football_data_client_mock.go
