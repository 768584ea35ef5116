package ecs

const singleItemResponse = `<?xml version="1.0" ?>
<ItemLookupResponse xmlns="http://webservices.amazon.com/AWSECommerceService/2013-08-01">
  <OperationRequest><RequestId>a1b2</RequestId></OperationRequest>
  <Items>
    <Request>
      <IsValid>True</IsValid>
      <ItemLookupRequest>
        <IdType>ASIN</IdType>
        <ItemId>B00NIYOOMA</ItemId>
        <ResponseGroup>Large</ResponseGroup>
      </ItemLookupRequest>
    </Request>
    <Item>
      <ASIN>B00NIYOOMA</ASIN>
      <DetailPageURL>https://www.amazon.com/dp/B00NIYOOMA</DetailPageURL>
      <SalesRank>1234</SalesRank>
      <ImageSets>
        <ImageSet Category="primary">
          <SmallImage><URL>https://images.example/small.jpg</URL><Height Units="pixels">75</Height><Width Units="pixels">60</Width></SmallImage>
          <LargeImage><URL>https://images.example/large.jpg</URL><Height Units="pixels">500</Height><Width Units="pixels">400</Width></LargeImage>
        </ImageSet>
      </ImageSets>
      <ItemAttributes>
        <Binding>Misc.</Binding>
        <Brand>Acme</Brand>
        <Title>Example Widget</Title>
      </ItemAttributes>
    </Item>
  </Items>
</ItemLookupResponse>`

const multiItemResponse = `<?xml version="1.0" ?>
<ItemLookupResponse xmlns="http://webservices.amazon.com/AWSECommerceService/2013-08-01">
  <Items>
    <Request>
      <IsValid>True</IsValid>
      <ItemLookupRequest>
        <IdType>ASIN</IdType>
        <ItemId>0679722769</ItemId>
        <ItemId>B000BADASN</ItemId>
        <ItemId>B0000TWO02</ItemId>
        <ResponseGroup>Large</ResponseGroup>
      </ItemLookupRequest>
      <Errors>
        <Error>
          <Code>AWS.InvalidParameterValue</Code>
          <Message>B000BADASN is not a valid value for ItemId. Please change this value and retry your request.</Message>
        </Error>
      </Errors>
    </Request>
    <Item>
      <ASIN>0679722769</ASIN>
      <DetailPageURL>https://www.amazon.com/dp/0679722769</DetailPageURL>
      <SalesRank>0</SalesRank>
      <CustomerReviews><IFrameURL>https://www.amazon.com/reviews/iframe?asin=0679722769</IFrameURL></CustomerReviews>
      <EditorialReviews>
        <EditorialReview><Source>Product Description</Source><Content>First description</Content></EditorialReview>
        <EditorialReview><Source>Amazon.com Review</Source><Content>A review</Content></EditorialReview>
        <EditorialReview><Source>Product Description</Source><Content>Second description</Content></EditorialReview>
      </EditorialReviews>
      <ImageSets>
        <ImageSet Category="variant">
          <MediumImage><URL>https://images.example/v1-medium.jpg</URL><Height Units="pixels">160</Height><Width Units="pixels">120</Width></MediumImage>
        </ImageSet>
        <ImageSet Category="primary">
          <MediumImage><URL>https://images.example/p-medium.jpg</URL><Height Units="pixels">160</Height><Width Units="pixels">104</Width></MediumImage>
          <LargeImage><URL>https://images.example/p-large.jpg</URL><Height Units="pixels">500</Height><Width Units="pixels">325</Width></LargeImage>
        </ImageSet>
      </ImageSets>
      <ItemAttributes>
        <Author>James Joyce</Author>
        <Creator Role="Editor">Hans Walter Gabler</Creator>
        <EAN>9780679722762</EAN>
        <ISBN>0679722769</ISBN>
        <ListPrice><Amount>1600</Amount><CurrencyCode>USD</CurrencyCode><FormattedPrice>$16.00</FormattedPrice></ListPrice>
        <Publisher>Vintage</Publisher>
        <Title>Ulysses</Title>
      </ItemAttributes>
      <OfferSummary>
        <LowestNewPrice><Amount>1095</Amount><CurrencyCode>USD</CurrencyCode><FormattedPrice>$10.95</FormattedPrice></LowestNewPrice>
      </OfferSummary>
    </Item>
    <Item>
      <ASIN>B0000TWO02</ASIN>
      <DetailPageURL>https://www.amazon.com/dp/B0000TWO02</DetailPageURL>
      <SalesRank>n/a</SalesRank>
      <ItemAttributes>
        <Author>First Author</Author>
        <Author>Second Author</Author>
        <ListPrice><CurrencyCode>USD</CurrencyCode><FormattedPrice>Too low to display</FormattedPrice></ListPrice>
        <Title>Second Item</Title>
      </ItemAttributes>
    </Item>
  </Items>
</ItemLookupResponse>`

const errorResponse = `<?xml version="1.0"?>
<ItemLookupErrorResponse xmlns="http://ecs.amazonaws.com/doc/2013-08-01/">
  <Error>
    <Code>AWS.InvalidParameterValue</Code>
    <Message>B000BADASN is not a valid value for ItemId. Please change this value and retry your request.</Message>
  </Error>
  <RequestId>c0ffee</RequestId>
</ItemLookupErrorResponse>`
