package service

import (
	"io"

	"blogbootstrap/internal/config"
	"blogbootstrap/internal/repository"
)

type Service struct {
	Provision ProvisionService
	Sitemap   SitemapService
	Pages     PageService
}

func NewService(rep *repository.Repository, cfg *config.Config, out io.Writer) *Service {
	return &Service{
		Provision: NewProvisionService(rep.Schema, out),
		Sitemap:   NewSitemapService(rep.Post, cfg),
		Pages:     NewPageService(rep.Post, cfg, out),
	}
}
